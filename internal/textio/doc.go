// Package textio reads and writes site text files. Reading tolerates
// non-UTF-8 content via charset sniffing with a lossy fallback; writing
// is skipped when the content is unchanged.
package textio
