package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables lists the schema in creation order. Dropping or truncating must go
// in reverse.
//
// Order lines and sales headers keep product and customer ids without a
// foreign key; the ledgers decide what a missing row means.
// Categories and suppliers are referenced with the default RESTRICT, so they
// cannot be deleted while in use.
var Tables = []struct {
	Name string
	DDL  string
}{
	{"product_categories", `
	CREATE TABLE IF NOT EXISTS product_categories (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		notes TEXT NULL
	)`},
	{"products", `
	CREATE TABLE IF NOT EXISTS products (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		category_id INT UNSIGNED NULL,
		unit VARCHAR(32) NOT NULL,
		purchase_price DECIMAL(15,2) NOT NULL DEFAULT 0,
		selling_price DECIMAL(15,2) NOT NULL DEFAULT 0,
		stock INT NOT NULL DEFAULT 0,
		notes TEXT NULL,
		FOREIGN KEY (category_id) REFERENCES product_categories(id),
		INDEX idx_products_name (name)
	)`},
	{"suppliers", `
	CREATE TABLE IF NOT EXISTS suppliers (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NULL,
		address VARCHAR(255) NULL,
		contact_person VARCHAR(255) NULL,
		notes TEXT NULL
	)`},
	{"customers", `
	CREATE TABLE IF NOT EXISTS customers (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		address VARCHAR(255) NULL,
		email VARCHAR(255) NULL,
		customer_type VARCHAR(32) NOT NULL DEFAULT 'regular',
		debt DECIMAL(15,2) NOT NULL DEFAULT 0,
		total_purchase DECIMAL(15,2) NOT NULL DEFAULT 0,
		notes TEXT NULL
	)`},
	{"purchase_orders", `
	CREATE TABLE IF NOT EXISTS purchase_orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		date DATETIME NOT NULL,
		supplier_id INT UNSIGNED NULL,
		documents TEXT NULL,
		total_amount DECIMAL(15,2) NOT NULL,
		paid_amount DECIMAL(15,2) NOT NULL,
		debt DECIMAL(15,2) NOT NULL,
		notes TEXT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (supplier_id) REFERENCES suppliers(id),
		INDEX idx_purchase_orders_date (date)
	)`},
	{"purchase_order_items", `
	CREATE TABLE IF NOT EXISTS purchase_order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		purchase_order_id INT UNSIGNED NOT NULL,
		product_id INT UNSIGNED NOT NULL,
		quantity INT NOT NULL,
		purchase_price DECIMAL(15,2) NOT NULL,
		selling_price DECIMAL(15,2) NOT NULL,
		amount DECIMAL(15,2) NOT NULL,
		FOREIGN KEY (purchase_order_id) REFERENCES purchase_orders(id) ON DELETE CASCADE,
		INDEX idx_purchase_order_items_order (purchase_order_id),
		INDEX idx_purchase_order_items_product (product_id)
	)`},
	{"sales_orders", `
	CREATE TABLE IF NOT EXISTS sales_orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		date DATETIME NOT NULL,
		customer_type VARCHAR(32) NOT NULL,
		customer_id INT UNSIGNED NULL,
		total_amount DECIMAL(15,2) NOT NULL,
		customer_payment DECIMAL(15,2) NOT NULL,
		payment_method VARCHAR(32) NOT NULL,
		status VARCHAR(32) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		INDEX idx_sales_orders_customer (customer_id),
		INDEX idx_sales_orders_date (date)
	)`},
	{"sales_order_items", `
	CREATE TABLE IF NOT EXISTS sales_order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		sales_order_id INT UNSIGNED NOT NULL,
		product_id INT UNSIGNED NOT NULL,
		quantity INT NOT NULL,
		price DECIMAL(15,2) NOT NULL,
		amount DECIMAL(15,2) NOT NULL,
		FOREIGN KEY (sales_order_id) REFERENCES sales_orders(id) ON DELETE CASCADE,
		INDEX idx_sales_order_items_order (sales_order_id),
		INDEX idx_sales_order_items_product (product_id)
	)`},
	{"price_adjustments", `
	CREATE TABLE IF NOT EXISTS price_adjustments (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		product_id INT UNSIGNED NOT NULL,
		old_price DECIMAL(15,2) NOT NULL,
		new_price DECIMAL(15,2) NOT NULL,
		date DATETIME NOT NULL,
		user_id INT UNSIGNED NOT NULL,
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
		INDEX idx_price_adjustments_product (product_id)
	)`},
}

// Migrate creates any missing table. It never alters existing ones.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, tbl := range Tables {
		if _, err := db.ExecContext(ctx, tbl.DDL); err != nil {
			return fmt.Errorf("creating table %s: %w", tbl.Name, err)
		}
	}
	return nil
}
