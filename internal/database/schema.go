package database

import (
	"database/sql"
)

// The schema below mirrors the reference store table for table. Foreign keys
// carry no ON DELETE action, so removing a parent that still has dependent
// rows fails at the constraint.

const createCategories = `
CREATE TABLE IF NOT EXISTS categories (
    categoryId INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
)`

const createUsers = `
CREATE TABLE IF NOT EXISTS users (
    userId INTEGER PRIMARY KEY,
    type TEXT CHECK(type IN ('acheteur', 'vendeur', 'admin')),
    password TEXT,
    email TEXT UNIQUE,
    firstName TEXT,
    lastName TEXT,
    address1 TEXT,
    address2 TEXT,
    zipcode TEXT,
    city TEXT,
    state TEXT,
    country TEXT,
    phone TEXT,
    avatar TEXT,
    IP TEXT,
    acceptation INTEGER CHECK(acceptation IN (0,1)) DEFAULT 1,
    vendor_cert_path TEXT,
    cin_path TEXT,
    photo_path TEXT
)`

// Seller accounts must never start out approved, no matter what the insert
// said. Enforced here at the storage layer so no write path can bypass it.
const createAcceptationTrigger = `
CREATE TRIGGER IF NOT EXISTS trg_users_acceptation_after
AFTER INSERT ON users
WHEN NEW.type = 'vendeur'
BEGIN
    UPDATE users
       SET acceptation = 0
     WHERE userId = NEW.userId;
END`

const createProducts = `
CREATE TABLE IF NOT EXISTS products (
    productId INTEGER PRIMARY KEY,
    name TEXT,
    price REAL,
    description TEXT,
    image TEXT,
    stock INTEGER,
    categoryId INTEGER,
    maker INTEGER,
    FOREIGN KEY(categoryId) REFERENCES categories(categoryId),
    FOREIGN KEY(maker) REFERENCES users(userId)
)`

const createKart = `
CREATE TABLE IF NOT EXISTS kart (
    userId INTEGER,
    productId INTEGER,
    FOREIGN KEY(userId) REFERENCES users(userId),
    FOREIGN KEY(productId) REFERENCES products(productId)
)`

const createOrders = `
CREATE TABLE IF NOT EXISTS orders (
    orderId INTEGER PRIMARY KEY,
    userId INTEGER,
    orderDate TEXT,
    total REAL,
    FOREIGN KEY(userId) REFERENCES users(userId)
)`

const createOrderItems = `
CREATE TABLE IF NOT EXISTS order_items (
    id INTEGER PRIMARY KEY,
    orderId INTEGER,
    productId INTEGER,
    quantity INTEGER,
    FOREIGN KEY(orderId) REFERENCES orders(orderId),
    FOREIGN KEY(productId) REFERENCES products(productId)
)`

const createAvis = `
CREATE TABLE IF NOT EXISTS avis (
    avisId INTEGER PRIMARY KEY,
    userId INTEGER,
    productId INTEGER,
    commentaire TEXT,
    note INTEGER CHECK(note BETWEEN 1 AND 5),
    date TEXT DEFAULT (datetime('now','localtime')),
    FOREIGN KEY(userId) REFERENCES users(userId),
    FOREIGN KEY(productId) REFERENCES products(productId)
)`

const createRatingSellers = `
CREATE TABLE IF NOT EXISTS rating_sellers (
    ratingSellerId INTEGER PRIMARY KEY,
    sellerId INTEGER,
    raterId INTEGER,
    commentaire TEXT,
    rating INTEGER CHECK(rating BETWEEN 1 AND 5),
    date TEXT DEFAULT (datetime('now','localtime')),
    FOREIGN KEY(sellerId) REFERENCES users(userId),
    FOREIGN KEY(raterId) REFERENCES users(userId)
)`

const createProductMedia = `
CREATE TABLE IF NOT EXISTS product_media (
    mediaId INTEGER PRIMARY KEY,
    productId INTEGER,
    url TEXT,
    mediaType TEXT CHECK(mediaType IN ('image','video')),
    FOREIGN KEY(productId) REFERENCES products(productId)
)`

const createProductTypes = `
CREATE TABLE IF NOT EXISTS product_types (
    productId INTEGER PRIMARY KEY,
    type TEXT CHECK(type IN ('digital','physical')),
    livraisonType TEXT CHECK(livraisonType IN ('gratuite','payante')),
    fraisLivraison REAL DEFAULT 0,
    FOREIGN KEY(productId) REFERENCES products(productId)
)`

const createProduitsDetails = `
CREATE TABLE IF NOT EXISTS produits_details (
    detailId INTEGER PRIMARY KEY,
    productId INTEGER,
    cle TEXT,
    valeur TEXT,
    FOREIGN KEY(productId) REFERENCES products(productId)
)`

const createCategoryAttributes = `
CREATE TABLE IF NOT EXISTS category_attributes (
    attrId INTEGER PRIMARY KEY,
    categoryId INTEGER,
    cle TEXT,
    FOREIGN KEY(categoryId) REFERENCES categories(categoryId)
)`

const createProductCategoryAttributes = `
CREATE TABLE IF NOT EXISTS product_category_attributes (
    productId INTEGER,
    attrId INTEGER,
    valeur TEXT,
    FOREIGN KEY(productId) REFERENCES products(productId),
    FOREIGN KEY(attrId) REFERENCES category_attributes(attrId)
)`

const createMessages = `
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sender TEXT NOT NULL,
    receiver TEXT NOT NULL,
    content TEXT,
    file_path TEXT,
    file_type TEXT CHECK(file_type IN ('image', 'audio')),
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// defaultCategories is inserted once, when the categories table is empty.
var defaultCategories = []string{
	"Électronique", "Vêtements", "Jouets", "Meubles", "Livres",
	"Chaussures", "Accessoires", "Cosmétiques", "Sport", "Alimentation",
	"Bricolage", "Jardinage", "Informatique", "Automobile", "Musique",
	"Art", "Santé", "Bébés", "Papeterie", "Décoration",
}

func createTables(db *sql.DB) error {
	stmts := []string{
		createCategories,
		createUsers,
		createAcceptationTrigger,
		createProducts,
		createKart,
		createOrders,
		createOrderItems,
		createAvis,
		createRatingSellers,
		createProductMedia,
		createProductTypes,
		createProduitsDetails,
		createCategoryAttributes,
		createProductCategoryAttributes,
		createMessages,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func seedCategories(db *sql.DB) error {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, name := range defaultCategories {
		if _, err := db.Exec("INSERT INTO categories (name) VALUES (?)", name); err != nil {
			return err
		}
	}
	return nil
}
