package lastfm

// Tag represents a Last.fm tag with popularity count.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"` // Present in track.getTopTags, absent in artist.getTopTags
	URL   string `json:"url"`
}

// topTagsResponse is the JSON response shared by track.getTopTags and artist.getTopTags.
type topTagsResponse struct {
	TopTags struct {
		Tag []Tag `json:"tag"`
	} `json:"toptags"`
}

// apiError represents a Last.fm API error response.
type apiError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// requestParams are encoded into the query string of every API call.
type requestParams struct {
	Method      string `url:"method"`
	Artist      string `url:"artist"`
	Track       string `url:"track,omitempty"`
	Autocorrect int    `url:"autocorrect"`
	Format      string `url:"format"`
	APIKey      string `url:"api_key"`
}
