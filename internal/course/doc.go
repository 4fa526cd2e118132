// Package course turns a Learning Resource tree into the Learning Object tree
// served to the course reader. Builder handles one resource and its subtree,
// Assembler wraps the root into the course document.
package course
