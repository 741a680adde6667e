// Package desk exposes the lead core to presentation layers: listing the
// ordered projection, single-record mutations, annotation, and file
// import. It owns the store handle for the life of the process.
package desk
