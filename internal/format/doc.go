// Package format renders the consolidated output file.
//
// Назначение: фиксированный порядок секций, нормализация переводов строк,
// переотступ тел namespace.
// Не делает: разбора исходников, выбора кодировки и записи на диск.
// Зависимости: internal/ast, internal/merge.
package format
