// Package fuzztests houses Go fuzz harnesses that exercise the early
// compilation pipeline (source -> lexer -> parser). Its goal is to smoke
// test robustness and guard against panics or runaway allocation on
// arbitrary inputs. The layout-sensitive lexer gets particular attention:
// mixed indentation, unterminated brackets and stray dedents have all
// caused loops before.
package fuzztests
