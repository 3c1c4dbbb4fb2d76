package repositories

import "database/sql"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		rating DECIMAL(3,2) NOT NULL DEFAULT 0,
		reviews_count INT NOT NULL DEFAULT 0,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_seller BOOLEAN NOT NULL DEFAULT FALSE,
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id INT AUTO_INCREMENT PRIMARY KEY,
		seller_id INT NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(12,2) NOT NULL,
		category VARCHAR(64) NOT NULL,
		location VARCHAR(255) NOT NULL DEFAULT '',
		abv DECIMAL(5,2) NOT NULL DEFAULT 0,
		volume_ml INT NOT NULL DEFAULT 0,
		brand VARCHAR(255) NOT NULL DEFAULT '',
		vintage INT NOT NULL DEFAULT 0,
		is_kosher BOOLEAN NOT NULL DEFAULT FALSE,
		image_url VARCHAR(512) NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT 'PENDING',
		confidence JSON NULL,
		view_count INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NULL ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (seller_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id INT AUTO_INCREMENT PRIMARY KEY,
		listing_id INT NOT NULL,
		seller_id INT NOT NULL,
		reviewer_id INT NOT NULL,
		rating INT NOT NULL,
		comment TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_reviewer_listing (reviewer_id, listing_id),
		FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE,
		FOREIGN KEY (seller_id) REFERENCES users(id),
		FOREIGN KEY (reviewer_id) REFERENCES users(id)
	)`,
}

// EnsureSchema creates the tables if they do not exist yet. Reviews are
// removed together with their listing; the seller aggregate is recomputed by
// the delete path, not by the database.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
