package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleOutcome reports which side of a toggle a call ended up on.
type ToggleOutcome int

const (
	// Removed: the row existed and this call deleted it.
	Removed ToggleOutcome = iota
	// Inserted: the row was absent and this call created it.
	Inserted
	// AlreadyPresent: the row was absent when we looked but a concurrent
	// transaction inserted it first; nothing was written.
	AlreadyPresent
)

func (o ToggleOutcome) String() string {
	switch o {
	case Removed:
		return "removed"
	case Inserted:
		return "inserted"
	default:
		return "present"
	}
}

// Present reports whether the relation exists after the toggle.
func (o ToggleOutcome) Present() bool {
	return o != Removed
}

// ToggleRow flips the existence of the join row identified by query/args.
// It must run inside a transaction. The delete and the insert are each a
// single conditional statement and the insert relies on a unique index over
// the pair, so concurrent callers can never produce a duplicate row.
func ToggleRow[T any](tx *gorm.DB, row *T, query string, args ...interface{}) (ToggleOutcome, error) {
	res := tx.Where(query, args...).Delete(new(T))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		return Removed, nil
	}

	res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return AlreadyPresent, nil
	}
	return Inserted, nil
}
