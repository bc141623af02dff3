package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"focusly/internal/domain"
)

// stateTx groups the statements of one load or save
type stateTx struct {
	tx *sql.Tx
}

func (t *stateTx) loadNodes(ctx context.Context) ([]*domain.LearningNode, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT doc FROM nodes ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []string
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decodeNodes(docs)
}

// replaceNodes rewrites the node table with nodes in collection order
func (t *stateTx) replaceNodes(ctx context.Context, nodes []*domain.LearningNode) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return err
	}

	stmt, err := t.tx.PrepareContext(ctx, `INSERT INTO nodes (id, position, doc) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, n := range nodes {
		doc, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("failed to encode node %s: %w", n.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, n.ID, i, string(doc)); err != nil {
			return fmt.Errorf("failed to store node %s: %w", n.ID, err)
		}
	}
	return nil
}

// getDocument returns "" when key is absent
func (t *stateTx) getDocument(ctx context.Context, key string) (string, error) {
	var doc string
	err := t.tx.QueryRowContext(ctx, `SELECT doc FROM documents WHERE key = ?`, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return doc, err
}

func (t *stateTx) putDocument(ctx context.Context, key, doc string) error {
	_, err := t.tx.ExecContext(ctx, `INSERT OR REPLACE INTO documents (key, doc) VALUES (?, ?)`, key, doc)
	return err
}

func (t *stateTx) setMeta(ctx context.Context, key, value string) error {
	_, err := t.tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}
