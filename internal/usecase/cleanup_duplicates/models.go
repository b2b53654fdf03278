package cleanup_duplicates

// Response итог очистки дубликатов
type Response struct {
	DeletedCount    int     // Удалено строк
	DuplicateGroups int     // Групп (email, госномер, дата) с дубликатами
	FailedIDs       []int64 // Строки, которые не удалось удалить
}
