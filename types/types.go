// Package types is a super-package that contains all library code needed to turn a relay allocation into
// something a transport can connect with. Such as fixed-length credential records, relay endpoint types, and
// the descriptor builder.
//
// This package exists to avoid import cycles, and to clean up all misc/"leaf" functions and types into one hierarchy.
//
// As a general rule to avoid import cycles inside this package:
//   - Only import parent packages, don't import child packages
//   - Importing from a "sibling" package (up the tree) is allowed.
package types
