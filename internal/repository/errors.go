package repository

import "errors"

// ErrBudgetExceeded is returned when a create would push spending past
// the enclosing budget ceiling. Nothing is written when it is returned.
var ErrBudgetExceeded = errors.New("budget ceiling exceeded")

// ErrDeadlineExceedsParent is returned when a child record's deadline
// falls after its parent's deadline.
var ErrDeadlineExceedsParent = errors.New("deadline exceeds parent deadline")
