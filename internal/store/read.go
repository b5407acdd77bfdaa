package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/cardsearch/internal/querysql"
)

// fetchIDsTemplate is the page query every search runs. The compiled joins
// and WHERE clause replace the placeholders; predicate parameters are
// bound positionally and :limit / :cursor by name.
const fetchIDsTemplate = `SELECT DISTINCT cards.id FROM cards {joins} {wheres} ORDER BY cards.name COLLATE BINARY, cards.id COLLATE BINARY LIMIT :limit OFFSET :cursor`

// FetchIDsQuery returns the page query text for a compiled search.
func FetchIDsQuery(q querysql.SQL) string {
	return strings.NewReplacer(
		"{joins}", q.JoinClauses(),
		"{wheres}", q.Wheres(),
	).Replace(fetchIDsTemplate)
}

// FetchIDs returns up to limit card ids matching q, skipping the first
// cursor matches. Returns an empty slice (not nil) when nothing matches.
func (s *Store) FetchIDs(ctx context.Context, q querysql.SQL, cursor, limit int) ([]string, error) {
	if cursor < 0 {
		return nil, fmt.Errorf("fetch ids: negative cursor %d", cursor)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("fetch ids: limit must be positive, got %d", limit)
	}

	args := append(q.Args(), sql.Named("limit", limit), sql.Named("cursor", cursor))

	rows, err := s.db.QueryContext(ctx, FetchIDsQuery(q), args...)
	if err != nil {
		return nil, fmt.Errorf("fetch ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("fetch ids: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch ids: iterate: %w", err)
	}
	return ids, nil
}

// GetCard reads a card and its keywords. Returns ErrNotFound if the id has
// no row.
func (s *Store) GetCard(ctx context.Context, id string) (Card, error) {
	var (
		card              Card
		power, toughness  sql.NullString
		identity, printed [5]bool
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, type_line, oracle_text, power, toughness,
		       W, U, B, R, G, color_W, color_U, color_B, color_R, color_G
		FROM cards WHERE id = ?
	`, id).Scan(
		&card.ID, &card.Name, &card.TypeLine, &card.OracleText, &power, &toughness,
		&identity[0], &identity[1], &identity[2], &identity[3], &identity[4],
		&printed[0], &printed[1], &printed[2], &printed[3], &printed[4],
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Card{}, fmt.Errorf("get card %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Card{}, fmt.Errorf("get card %s: %w", id, err)
	}
	card.Power = power.String
	card.Toughness = toughness.String
	card.Identity = flagColors(identity)
	card.Colors = flagColors(printed)

	card.Keywords, err = s.cardKeywords(ctx, id)
	if err != nil {
		return Card{}, err
	}
	return card, nil
}

func (s *Store) cardKeywords(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT keyword FROM card_keywords
		WHERE card_id = ?
		ORDER BY keyword COLLATE BINARY ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query keywords: %w", err)
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		keywords = append(keywords, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keywords: %w", err)
	}
	return keywords, nil
}

// CountCards returns the number of cards in the catalog.
func (s *Store) CountCards(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}
