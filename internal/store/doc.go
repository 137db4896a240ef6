// Package store holds the application state: imported articles, the
// vocabulary notebook, notes, exam history, the language preference and
// the AI settings. State lives in memory and is mirrored to a local
// SQLite snapshot database on every mutation; derived statistics are
// recomputed on every change and the user level is re-assessed in the
// background every few saved words.
package store
