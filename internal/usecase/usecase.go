// Package usecase holds the business rules between the HTTP delivery layer and
// the repositories. Every operation receives the resolved effective view and
// must stay inside the partition it names.
package usecase

import "time"

// timeNow is swapped in tests.
var timeNow = time.Now
