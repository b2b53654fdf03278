package migrations

import "embed"

// FS SQL-миграции схемы хранилища бронирований
//
//go:embed *.sql
var FS embed.FS
