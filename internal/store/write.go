package store

import (
	"context"
	"database/sql"
	"fmt"
)

// InsertCard writes a card and replaces its keywords. Writing the same id
// again overwrites the earlier row.
func (s *Store) InsertCard(ctx context.Context, card Card) error {
	return s.InsertCards(ctx, []Card{card})
}

// InsertCards writes cards in a single transaction. Either every card is
// written or none is.
func (s *Store) InsertCards(ctx context.Context, cards []Card) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert cards: begin: %w", err)
	}
	defer tx.Rollback()

	for _, card := range cards {
		if err := insertCard(ctx, tx, card); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert cards: commit: %w", err)
	}
	return nil
}

func insertCard(ctx context.Context, tx *sql.Tx, card Card) error {
	if card.ID == "" {
		return fmt.Errorf("insert card %q: empty id", card.Name)
	}

	identity := colorFlags(card.Identity)
	printed := colorFlags(card.Colors)

	_, err := tx.ExecContext(ctx, `
		INSERT INTO cards
		(id, name, type_line, oracle_text, power, toughness,
		 W, U, B, R, G, color_W, color_U, color_B, color_R, color_G)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type_line = excluded.type_line,
			oracle_text = excluded.oracle_text,
			power = excluded.power,
			toughness = excluded.toughness,
			W = excluded.W, U = excluded.U, B = excluded.B, R = excluded.R, G = excluded.G,
			color_W = excluded.color_W, color_U = excluded.color_U, color_B = excluded.color_B,
			color_R = excluded.color_R, color_G = excluded.color_G
	`,
		card.ID,
		card.Name,
		card.TypeLine,
		card.OracleText,
		nullable(card.Power),
		nullable(card.Toughness),
		identity[0], identity[1], identity[2], identity[3], identity[4],
		printed[0], printed[1], printed[2], printed[3], printed[4],
	)
	if err != nil {
		return fmt.Errorf("insert card %s: %w", card.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM card_keywords WHERE card_id = ?`, card.ID); err != nil {
		return fmt.Errorf("insert card %s: clear keywords: %w", card.ID, err)
	}
	for _, kw := range card.Keywords {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO card_keywords (card_id, keyword) VALUES (?, ?)
			ON CONFLICT DO NOTHING
		`, card.ID, kw)
		if err != nil {
			return fmt.Errorf("insert card %s: keyword %q: %w", card.ID, kw, err)
		}
	}
	return nil
}
