package wiki

// PageRef identifies a remote page. Version is the store's monotonic
// revision counter; updates must send exactly Version+1.
type PageRef struct {
	ID      string
	Version int
	Title   string
}

// versionField mirrors the store's nested version object.
type versionField struct {
	Number int `json:"number"`
}

// pageContent is the page payload embedded in search and listing results.
type pageContent struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Version versionField `json:"version"`
}

// searchResponse is the shape of /search results. Each hit wraps the
// page under a "content" key.
type searchResponse struct {
	Results []struct {
		Content pageContent `json:"content"`
	} `json:"results"`
	Size int `json:"size"`
}

// listResponse is the shape of the /content listing endpoint, which
// returns pages directly rather than wrapped in search hits.
type listResponse struct {
	Results []pageContent `json:"results"`
	Size    int           `json:"size"`
}

type ancestorRef struct {
	ID string `json:"id"`
}

type spaceRef struct {
	Key string `json:"key"`
}

type storageBody struct {
	Storage storageValue `json:"storage"`
}

type storageValue struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

type createRequest struct {
	Type      string        `json:"type"`
	Title     string        `json:"title"`
	Ancestors []ancestorRef `json:"ancestors"`
	Space     spaceRef      `json:"space"`
	Body      storageBody   `json:"body"`
}

type createResponse struct {
	ID string `json:"id"`
}

type updateRequest struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"`
	Title   string       `json:"title"`
	Version versionField `json:"version"`
	Body    storageBody  `json:"body"`
}
