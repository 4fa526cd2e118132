// Package resources answers queries about Learning Resources: which files a
// directory holds, how its routes and asset links are formed, which videos it
// references, and how a course directory is discovered into a resource tree.
package resources
