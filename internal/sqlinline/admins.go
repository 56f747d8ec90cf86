package sqlinline

const QSelectAdminByUsername = `--sql 99b0844c-358d-4bf9-893c-3086ba757c66
select id, username, password_hash, created_at
from admins
where username = lower($1::text)
limit 1;
`

const QInsertAdmin = `--sql 15aeac16-7b9a-43f9-85e2-ca66eeef046a
insert into admins(id, username, password_hash, created_at)
values (gen_random_uuid(), lower($1::text), $2::text, now())
on conflict (username) do update set password_hash = excluded.password_hash
returning id;
`
