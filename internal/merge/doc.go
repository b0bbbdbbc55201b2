// Package merge implements the consolidation stages that sit between
// parsing and rendering: file classification, version fact extraction,
// import reconciliation, visibility rewriting and namespace aggregation.
//
// Назначение: чистые преобразования над ast.Unit и путями файлов.
// Не делает: IO, обход каталогов, запись результата.
// Зависимости: internal/ast, doublestar для glob-исключений.
package merge
