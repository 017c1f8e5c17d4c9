// Package fuzztests houses Go fuzz harnesses for the decoration engine
// (source -> cursor -> lexer). Its goal is to smoke test robustness and to
// check the tree invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через курсор и лексер
// всех встроенных языков.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/langdef,
// internal/syntax.

package fuzztests
