// Package timezone resolves APP_TIMEZONE once and answers calendar questions
// in it. Slot dates are calendar days stored as UTC midnights, so a day is
// computed locally and then pinned to UTC.
package timezone
