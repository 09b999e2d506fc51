package storage

import (
	"database/sql"

	"bistro-orders/internal/domain"
)

// PostgresCatalog reads the menu catalog. Restaurants are addressed by slug.
type PostgresCatalog struct {
	DB *sql.DB
}

func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{DB: db}
}

func (r *PostgresCatalog) ListMenuItems(restaurant string) ([]domain.MenuItem, error) {
	rows, err := r.DB.Query(`
		SELECT m.id, m.restaurant_id, m.name, COALESCE(m.description, ''), m.price,
		       m.category_id, COALESCE(m.emoji, ''), m.popular, m.special,
		       m.available, COALESCE(m.image_url, '')
		FROM menu_items m
		JOIN restaurants r ON m.restaurant_id = r.id
		WHERE r.slug = $1
		ORDER BY m.category_id, m.name
	`, restaurant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.CategoryID, &item.Emoji, &item.Popular, &item.Special,
			&item.Available, &item.ImageURL); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresCatalog) GetMenuItem(restaurant, itemID string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRow(`
		SELECT m.id, m.restaurant_id, m.name, COALESCE(m.description, ''), m.price,
		       m.category_id, COALESCE(m.emoji, ''), m.popular, m.special,
		       m.available, COALESCE(m.image_url, '')
		FROM menu_items m
		JOIN restaurants r ON m.restaurant_id = r.id
		WHERE r.slug = $1 AND m.id = $2
	`, restaurant, itemID).Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
		&item.Price, &item.CategoryID, &item.Emoji, &item.Popular, &item.Special,
		&item.Available, &item.ImageURL)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
