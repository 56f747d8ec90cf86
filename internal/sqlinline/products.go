package sqlinline

const QInsertProduct = `--sql abc5eff7-d136-4c5d-8dfc-2d7a65b0ffd6
insert into products(id, artisan_id, image_path, material, time_hours, caption, price_low, price_high, certificate_id, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::double precision, $5::text, $6::int, $7::int, $8::text, now())
returning id;
`

const QSelectProductByID = `--sql 4b960de7-7629-4ba5-bff6-386eeddc7c68
select p.id, p.artisan_id, p.image_path, p.material, p.time_hours, p.caption,
       p.price_low, p.price_high, p.certificate_id, p.created_at,
       a.name, a.location, a.status = 'verified'
from products p
join artisans a on a.id = p.artisan_id
where p.id = $1::uuid
limit 1;
`

const QListProducts = `--sql b7e5e988-03cd-4081-8b82-974cc5db1f81
select p.id, p.artisan_id, p.image_path, p.material, p.time_hours, p.caption,
       p.price_low, p.price_high, p.certificate_id, p.created_at,
       a.name, a.location, a.status = 'verified'
from products p
join artisans a on a.id = p.artisan_id
where ($1::text = '' or p.material = $1::text)
  and ($2::int < 0 or p.price_high >= $2::int)
  and ($3::int < 0 or p.price_low <= $3::int)
  and (not $4::bool or a.status = 'verified')
order by p.created_at desc
limit $5::int offset $6::int;
`

const QListProductsByArtisan = `--sql 6e9d12c6-5361-4e6f-bbe2-0da08476d42b
select id, artisan_id, image_path, material, time_hours, caption,
       price_low, price_high, certificate_id, created_at
from products
where artisan_id = $1::uuid
order by created_at desc;
`

const QDeleteProduct = `--sql 163da07c-60f3-4ede-aebd-b0336de95637
delete from products
where id = $1::uuid and artisan_id = $2::uuid
returning image_path;
`

const QListDistinctMaterials = `--sql dd960657-b041-45f3-8fd9-aa87955aef04
select distinct material
from products
order by material;
`
