package ports

// QueryLauncher opens a node's search query in the user's web browser
type QueryLauncher interface {
	OpenQuery(query string) error
}
