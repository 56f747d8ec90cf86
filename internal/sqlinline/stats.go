package sqlinline

const QPlatformStats = `--sql e286cab2-6deb-4dd2-8069-280e82842248
select
  (select count(*) from artisans)                              as total_artisans,
  (select count(*) from artisans where status = 'pending')     as pending_artisans,
  (select count(*) from artisans where status = 'verified')    as verified_artisans,
  (select count(*) from products)                              as total_products,
  (select coalesce(avg((price_low + price_high) / 2.0), 0) from products) as avg_price_mid;
`
