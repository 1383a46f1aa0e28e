package pypi

// Wire types for the PyPI JSON API (https://pypi.org/pypi/{name}/json) and
// the PEP 691 simple index (https://pypi.org/simple/).

type projectResponse struct {
	Info     infoBlock                `json:"info"`
	Releases map[string][]releaseFile `json:"releases"`
}

type infoBlock struct {
	Name              string            `json:"name"`
	Version           string            `json:"version"`
	Summary           string            `json:"summary"`
	Author            string            `json:"author"`
	AuthorEmail       string            `json:"author_email"`
	License           string            `json:"license"`
	LicenseExpression string            `json:"license_expression"`
	HomePage          string            `json:"home_page"`
	Keywords          string            `json:"keywords"`
	Classifiers       []string          `json:"classifiers"`
	ProjectURLs       map[string]string `json:"project_urls"`
	RequiresPython    string            `json:"requires_python"`
}

type releaseFile struct {
	UploadTime        string `json:"upload_time"`
	UploadTimeISO8601 string `json:"upload_time_iso_8601"`
	Yanked            bool   `json:"yanked"`
}

type simpleIndex struct {
	Projects []simpleProject `json:"projects"`
}

type simpleProject struct {
	Name string `json:"name"`
}
