// Package token tokenizes KDL v2 text.
//
// Tokenize turns a UTF-8 byte blob into a flat token stream carrying
// line/column positions. String tokens arrive fully processed: escapes are
// decoded and multi-line forms are dedented, so the parser only sees final
// payloads. Tokenization fails fast; errors wrap a sentinel kind with the
// failing position.
package token
