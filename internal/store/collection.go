package store

import (
	"context"
	"fmt"
	"strings"
)

// Table maps a record type onto a SQL table with an integer id column.
type Table[R any, F any] struct {
	Name string
	// Columns lists every column but id, in the order Values returns them.
	Columns []string
	// Types holds the SQL column definitions, parallel to Columns.
	Types  []string
	Values func(F) ([]any, error)
	// Scan reads id followed by Columns.
	Scan func(row Scanner) (R, error)
}

// Collection is the server-side store of one record collection.
type Collection[R any, F any] struct {
	db    DB
	table Table[R, F]
}

func NewCollection[R any, F any](db DB, table Table[R, F]) *Collection[R, F] {
	return &Collection[R, F]{db: db, table: table}
}

// Migrate creates the table if it does not exist.
func (c *Collection[R, F]) Migrate(ctx context.Context) error {
	defs := []string{"id " + c.db.IDColumn()}
	for i, col := range c.table.Columns {
		defs = append(defs, col+" "+c.table.Types[i])
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", c.table.Name, strings.Join(defs, ", "))
	if _, err := c.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", c.table.Name, err)
	}
	return nil
}

// List returns every record in ascending id order.
func (c *Collection[R, F]) List(ctx context.Context) ([]R, error) {
	rows, err := c.db.Query(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY id", c.selectList(), c.table.Name))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.table.Name, err)
	}
	defer rows.Close()

	out := []R{}
	for rows.Next() {
		r, err := c.table.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.table.Name, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.table.Name, err)
	}
	return out, nil
}

func (c *Collection[R, F]) Get(ctx context.Context, id int64) (R, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", c.selectList(), c.table.Name, c.db.Placeholder(1))
	return c.table.Scan(c.db.QueryRow(ctx, q, id))
}

// Create inserts a record and returns it with its assigned id.
func (c *Collection[R, F]) Create(ctx context.Context, form F) (R, error) {
	var zero R
	args, err := c.table.Values(form)
	if err != nil {
		return zero, err
	}

	marks := make([]string, len(args))
	for i := range args {
		marks[i] = c.db.Placeholder(i + 1)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		c.table.Name, strings.Join(c.table.Columns, ", "), strings.Join(marks, ", "), c.selectList())

	r, err := c.table.Scan(c.db.QueryRow(ctx, q, args...))
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", c.table.Name, err)
	}
	return r, nil
}

// Update overwrites every column of the record with the given id.
func (c *Collection[R, F]) Update(ctx context.Context, id int64, form F) (R, error) {
	var zero R
	args, err := c.table.Values(form)
	if err != nil {
		return zero, err
	}

	sets := make([]string, len(c.table.Columns))
	for i, col := range c.table.Columns {
		sets[i] = col + " = " + c.db.Placeholder(i+1)
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s RETURNING %s",
		c.table.Name, strings.Join(sets, ", "), c.db.Placeholder(len(args)+1), c.selectList())

	r, err := c.table.Scan(c.db.QueryRow(ctx, q, append(args, id)...))
	if err != nil {
		return zero, fmt.Errorf("update %s %d: %w", c.table.Name, id, err)
	}
	return r, nil
}

func (c *Collection[R, F]) Delete(ctx context.Context, id int64) error {
	n, err := c.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = %s", c.table.Name, c.db.Placeholder(1)), id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", c.table.Name, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Collection[R, F]) selectList() string {
	return "id, " + strings.Join(c.table.Columns, ", ")
}
