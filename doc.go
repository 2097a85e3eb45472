/*
Package makigami builds and searches append-only logs that are too large
to grep directly. A log is split into fixed-size, line-aligned chunks;
each chunk is compressed independently and gets a Bloom filter over the
8-byte windows of its content. Searching tests a pattern's windows
against every chunk's filter and only decompresses the chunks that
could possibly contain a match, skipping the rest without ever touching
their bytes.

See cmd/makigami for the command-line build and search tools.
*/
package makigami
