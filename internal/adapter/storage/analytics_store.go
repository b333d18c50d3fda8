// internal/adapter/storage/analytics_store.go

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	domain "pulse/internal/domain/social"
)

// Snapshot is one persisted analytics reading.
type Snapshot struct {
	domain.AnalyticsUpdate
	CreatedAt time.Time `json:"created_at"`
}

// AnalyticsStore persists periodic analytics snapshots
type AnalyticsStore struct {
	db *pgxpool.Pool
}

// NewAnalyticsStore creates a new analytics store
func NewAnalyticsStore(db *pgxpool.Pool) *AnalyticsStore {
	return &AnalyticsStore{
		db: db,
	}
}

// SaveUpdate saves one analytics snapshot for a user
func (s *AnalyticsStore) SaveUpdate(ctx context.Context, userID string, update domain.AnalyticsUpdate) error {
	query := `
		INSERT INTO analytics_snapshots (
			id, user_id, total_engagement, total_reach, total_impressions,
			engagement_rate, platform_breakdown, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	breakdownJSON, err := json.Marshal(update.PlatformBreakdown)
	if err != nil {
		return fmt.Errorf("error marshaling platform breakdown: %w", err)
	}

	_, err = s.db.Exec(ctx, query,
		uuid.New().String(),
		userID,
		update.TotalEngagement,
		update.TotalReach,
		update.TotalImpressions,
		update.EngagementRate,
		breakdownJSON,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error saving analytics snapshot: %w", err)
	}

	return nil
}

// RecentUpdates returns the newest snapshots for a user, newest first.
func (s *AnalyticsStore) RecentUpdates(ctx context.Context, userID string, limit int) ([]Snapshot, error) {
	query := `
		SELECT total_engagement, total_reach, total_impressions,
			engagement_rate, platform_breakdown, created_at
		FROM analytics_snapshots
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying analytics snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var breakdownJSON []byte

		if err := rows.Scan(
			&snap.TotalEngagement,
			&snap.TotalReach,
			&snap.TotalImpressions,
			&snap.EngagementRate,
			&breakdownJSON,
			&snap.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning analytics snapshot: %w", err)
		}

		if len(breakdownJSON) > 0 {
			if err := json.Unmarshal(breakdownJSON, &snap.PlatformBreakdown); err != nil {
				return nil, fmt.Errorf("error unmarshaling platform breakdown: %w", err)
			}
		}

		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analytics snapshots: %w", err)
	}

	return snapshots, nil
}
