package sqlinline

const QInsertArtisan = `--sql bdd56a7c-97b0-4b50-95bd-6a540f6c30f6
insert into artisans(id, name, location, email, password_hash, certificate_path, status, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, lower($3::text), $4::text, nullif($5::text, ''), 'pending', now(), now())
returning id;
`

const QSelectArtisanByEmail = `--sql 67834eec-6e8a-40b0-9e85-78ed29bfd195
select id, name, location, email, password_hash, coalesce(certificate_path, ''), status, created_at, updated_at
from artisans
where email = lower($1::text)
limit 1;
`

const QSelectArtisanByID = `--sql 29329b2d-07f8-451b-9e72-ec235ffdd355
select id, name, location, email, password_hash, coalesce(certificate_path, ''), status, created_at, updated_at
from artisans
where id = $1::uuid
limit 1;
`

const QUpdateArtisanProfile = `--sql 46c8406b-eaaf-4fcd-85e0-8ac6fa56bf1f
update artisans
set name = coalesce(nullif($2::text, ''), name),
    location = coalesce(nullif($3::text, ''), location),
    updated_at = now()
where id = $1::uuid
returning id;
`

const QListArtisans = `--sql 70215791-5f12-4554-bd58-eb111b215d90
select a.id, a.name, a.location, a.email, coalesce(a.certificate_path, ''), a.status, a.created_at,
       count(p.id) as product_count
from artisans a
left join products p on p.artisan_id = a.id
where ($1::text = '' or a.status = $1::text)
group by a.id
order by a.created_at desc;
`

const QSelectArtisanDetail = `--sql d43c6d6e-0ced-4f3d-b6eb-021803f3ece7
select a.id, a.name, a.location, a.email, coalesce(a.certificate_path, ''), a.status, a.created_at,
       count(p.id) as product_count
from artisans a
left join products p on p.artisan_id = a.id
where a.id = $1::uuid
group by a.id;
`

const QUpdateArtisanStatus = `--sql e72033a2-0b18-45f0-83f5-c38b6d298d2e
update artisans
set status = $2::text,
    updated_at = now()
where id = $1::uuid
returning id;
`
