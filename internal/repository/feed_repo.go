package repository

import (
	"database/sql"
	"fmt"
	"time"

	"webbaby/internal/database"
	"webbaby/internal/growth"
	"webbaby/internal/models"
)

// FeedRepository handles database operations for feeds
type FeedRepository struct {
	db database.DBTX
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db database.DBTX) *FeedRepository {
	return &FeedRepository{db: db}
}

const feedColumns = "id, fed_at, amount_ml, feeding_type"

// Create inserts a feed and returns it with its new ID
func (r *FeedRepository) Create(fedAt time.Time, amountMl int, feedingType growth.FeedingType) (*models.Feed, error) {
	query := "INSERT INTO feeds (fed_at, amount_ml, feeding_type) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, fedAt.UTC(), amountMl, feedingType.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create feed: %w", err)
	}

	return &models.Feed{
		ID:          id,
		FedAt:       fedAt.UTC(),
		AmountMl:    amountMl,
		FeedingType: feedingType,
	}, nil
}

// GetByID retrieves a feed by ID
func (r *FeedRepository) GetByID(id int64) (*models.Feed, error) {
	query := "SELECT " + feedColumns + " FROM feeds WHERE id = ?"
	feed, err := scanFeed(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	return feed, nil
}

// GetLast retrieves the most recent feed
func (r *FeedRepository) GetLast() (*models.Feed, error) {
	query := "SELECT " + feedColumns + " FROM feeds ORDER BY fed_at DESC, id DESC LIMIT 1"
	feed, err := scanFeed(r.db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last feed: %w", err)
	}
	return feed, nil
}

// List returns feeds with from <= fed_at <= to in ascending order. A zero
// bound is open.
func (r *FeedRepository) List(from, to time.Time) ([]models.Feed, error) {
	query := "SELECT " + feedColumns + " FROM feeds WHERE 1 = 1"
	var args []interface{}
	if !from.IsZero() {
		query += " AND fed_at >= ?"
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		query += " AND fed_at <= ?"
		args = append(args, to.UTC())
	}
	query += " ORDER BY fed_at ASC, id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feeds: %w", err)
	}
	defer rows.Close()

	feeds := []models.Feed{}
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed: %w", err)
		}
		feeds = append(feeds, *feed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feeds: %w", err)
	}

	return feeds, nil
}

// Update overwrites a feed
func (r *FeedRepository) Update(feed *models.Feed) error {
	query := "UPDATE feeds SET fed_at = ?, amount_ml = ?, feeding_type = ? WHERE id = ?"
	_, err := r.db.Exec(query, feed.FedAt.UTC(), feed.AmountMl, feed.FeedingType.String(), feed.ID)
	if err != nil {
		return fmt.Errorf("failed to update feed: %w", err)
	}
	return nil
}

// Delete removes a feed and reports whether it existed
func (r *FeedRepository) Delete(id int64) (bool, error) {
	return deleteByID(r.db, "feeds", id)
}

// Insert stores a feed with its existing ID, used when restoring backups
func (r *FeedRepository) Insert(feed models.Feed) error {
	query := "INSERT INTO feeds (id, fed_at, amount_ml, feeding_type) VALUES (?, ?, ?, ?)"
	if _, err := r.db.Exec(query, feed.ID, feed.FedAt.UTC(), feed.AmountMl, feed.FeedingType.String()); err != nil {
		return fmt.Errorf("failed to insert feed %d: %w", feed.ID, err)
	}
	return nil
}

func scanFeed(s scanner) (*models.Feed, error) {
	var (
		feed        models.Feed
		feedingType string
	)
	if err := s.Scan(&feed.ID, &feed.FedAt, &feed.AmountMl, &feedingType); err != nil {
		return nil, err
	}
	ft, err := growth.ParseFeedingType(feedingType)
	if err != nil {
		return nil, err
	}
	feed.FeedingType = ft
	feed.FedAt = feed.FedAt.UTC()
	return &feed, nil
}
