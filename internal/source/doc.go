// Package source provides an in-memory data source that answers table queries
// over a fixed record set. It stands in for a remote list endpoint: it reads the
// canonical request (page, pageSize, sorter, filters) and answers with a
// success/data/total response.
package source
