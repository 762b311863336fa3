package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"credit-pricing/domain"
)

const proposalSchema = `
CREATE TABLE IF NOT EXISTS proposals (
	id                 TEXT PRIMARY KEY,
	client_name        TEXT NOT NULL,
	amount             REAL NOT NULL,
	term_days          INTEGER NOT NULL,
	ideal_rate_pct     REAL NOT NULL,
	composite_risk_pct REAL NOT NULL,
	risk_class         TEXT NOT NULL,
	market_position    TEXT NOT NULL,
	created_at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_proposals_created_at ON proposals(created_at);
`

// ProposalRepositorySQLite persists proposals in a SQLite database.
type ProposalRepositorySQLite struct {
	db *sql.DB
}

// NewProposalRepositorySQLite opens (or creates) the database at path and
// applies the schema. Paths starting with "file:" or ":memory:" are used as is.
func NewProposalRepositorySQLite(path string) (*ProposalRepositorySQLite, error) {
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		path = absPath
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single writer; also keeps an in-memory database on one connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec(proposalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &ProposalRepositorySQLite{db: db}, nil
}

func (r *ProposalRepositorySQLite) Save(ctx context.Context, p domain.Proposal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO proposals (id, client_name, amount, term_days, ideal_rate_pct,
			composite_risk_pct, risk_class, market_position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ClientName, p.Amount, p.TermDays, p.IdealRatePct,
		p.CompositeRiskPct, string(p.RiskClass), string(p.MarketPosition), p.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert proposal %s: %w", p.ID, err)
	}
	return nil
}

func (r *ProposalRepositorySQLite) Get(ctx context.Context, id string) (domain.Proposal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, client_name, amount, term_days, ideal_rate_pct,
			composite_risk_pct, risk_class, market_position, created_at
		FROM proposals WHERE id = ?`, id)

	p, err := scanProposal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Proposal{}, ErrProposalNotFound
	}
	if err != nil {
		return domain.Proposal{}, fmt.Errorf("failed to get proposal %s: %w", id, err)
	}
	return p, nil
}

func (r *ProposalRepositorySQLite) List(ctx context.Context, limit int) ([]domain.Proposal, error) {
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_name, amount, term_days, ideal_rate_pct,
			composite_risk_pct, risk_class, market_position, created_at
		FROM proposals ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	proposals := []domain.Proposal{}
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (r *ProposalRepositorySQLite) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM proposals WHERE created_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to delete proposals: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *ProposalRepositorySQLite) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProposal(row rowScanner) (domain.Proposal, error) {
	var (
		p          domain.Proposal
		riskClass  string
		position   string
		createdAtN int64
	)
	if err := row.Scan(&p.ID, &p.ClientName, &p.Amount, &p.TermDays, &p.IdealRatePct,
		&p.CompositeRiskPct, &riskClass, &position, &createdAtN); err != nil {
		return domain.Proposal{}, err
	}
	p.RiskClass = domain.RiskClass(riskClass)
	p.MarketPosition = domain.MarketPosition(position)
	p.CreatedAt = time.Unix(0, createdAtN).UTC()
	return p, nil
}
