// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package repositories

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/l3montree-dev/sbomingest/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository is the bulk storage primitive shared by every identity based repository.
type GormRepository[K utils.IdentityKey, T utils.Identifiable[K]] struct {
	db *gorm.DB
}

func newGormRepository[K utils.IdentityKey, T utils.Identifiable[K]](db *gorm.DB) *GormRepository[K, T] {
	return &GormRepository[K, T]{
		db: db,
	}
}

// FindByIdentities loads every row whose identity tuple is in keys with a single
// "(a, b) IN ((?, ?), ...)" query.
func (g *GormRepository[K, T]) FindByIdentities(ctx context.Context, uniqueBy []string, keys []K) ([]T, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	tuples := make([][]any, 0, len(keys))
	for _, key := range keys {
		values := key.Values()
		if len(values) != len(uniqueBy) {
			return nil, fmt.Errorf("identity has %d values but %d columns are unique", len(values), len(uniqueBy))
		}
		tuples = append(tuples, values)
	}

	var ts []T
	err := g.db.WithContext(ctx).
		Where(fmt.Sprintf("(%s) IN ?", quoteColumns(uniqueBy)), tuples).
		Find(&ts).Error
	return ts, err
}

// BulkUpsert inserts rows with a single statement. Rows whose identity already
// exists only get their updated_at and the non identity columns of uses overwritten.
// The id and the identity columns are read back for every row.
func (g *GormRepository[K, T]) BulkUpsert(ctx context.Context, uniqueBy []string, uses []string, rows []T) ([]T, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	err := g.db.WithContext(ctx).
		Select(append(slices.Clone(uses), "created_at", "updated_at")).
		Clauses(
			clause.OnConflict{
				Columns:   toColumns(uniqueBy),
				DoUpdates: clause.AssignmentColumns(updateColumns(uniqueBy, uses)),
			},
			clause.Returning{Columns: toColumns(append([]string{"id"}, uniqueBy...))},
		).
		Create(&rows).Error

	if isParameterLimitError(err) && len(rows) > 1 {
		half := len(rows) / 2
		first, err := g.BulkUpsert(ctx, uniqueBy, uses, rows[:half])
		if err != nil {
			return nil, err
		}
		second, err := g.BulkUpsert(ctx, uniqueBy, uses, rows[half:])
		if err != nil {
			return nil, err
		}
		return append(first, second...), nil
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (g *GormRepository[K, T]) GetDB(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

func updateColumns(uniqueBy []string, uses []string) []string {
	columns := make([]string, 0, len(uses)+1)
	for _, column := range uses {
		if !slices.Contains(uniqueBy, column) {
			columns = append(columns, column)
		}
	}
	return append(columns, "updated_at")
}

func toColumns(names []string) []clause.Column {
	columns := make([]clause.Column, 0, len(names))
	for _, name := range names {
		columns = append(columns, clause.Column{Name: name})
	}
	return columns
}

func quoteColumns(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, `"`+strings.ReplaceAll(name, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, ", ")
}

func isParameterLimitError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "extended protocol limited to 65535 parameters")
}
