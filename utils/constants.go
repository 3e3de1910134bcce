// File: utils/constants.go
package utils

// DateLayout is the canonical "YYYY-MM-DD" form used for plan day dates,
// delivery dates, intake dates and date-scoped dedup keys.
const DateLayout = "2006-01-02"
