package bitbucket

// apiError is the JSON error envelope Bitbucket wraps failures in.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// commitsResponse is the commits listing, newest first.
type commitsResponse struct {
	Values []struct {
		Hash string `json:"hash"`
	} `json:"values"`
}

// pullRequestBody is the create-pull-request payload.
type pullRequestBody struct {
	Title     string     `json:"title"`
	Source    prSource   `json:"source"`
	Reviewers []reviewer `json:"reviewers"`
}

type prSource struct {
	Branch prBranch `json:"branch"`
}

type prBranch struct {
	Name string `json:"name"`
}

type reviewer struct {
	UUID string `json:"uuid"`
}

// pullRequestResponse carries the fields we report back: the web link
// when present, the title otherwise.
type pullRequestResponse struct {
	Title string `json:"title"`
	Links struct {
		HTML struct {
			Href string `json:"href"`
		} `json:"html"`
	} `json:"links"`
}
