package pypi

import (
	"strings"
)

// Keys checked in priority order when locating a source repository URL.
var repoURLKeys = []string{"Repository", "Source", "Source Code", "Code"}

// extractLicense resolves a license string from the info block, preferring
// the SPDX license expression, then the free-form license field, then the
// first license trove classifier.
func extractLicense(info infoBlock) string {
	if info.LicenseExpression != "" {
		return info.LicenseExpression
	}
	if info.License != "" {
		return info.License
	}

	for _, classifier := range info.Classifiers {
		if strings.HasPrefix(classifier, "License :: ") {
			parts := strings.Split(classifier, " :: ")
			return parts[len(parts)-1]
		}
	}

	return ""
}

func extractHomepage(projectURLs map[string]string, homePage string) string {
	if homePage != "" {
		return homePage
	}
	if url, ok := projectURLs["Homepage"]; ok {
		return url
	}
	if url, ok := projectURLs["Home"]; ok {
		return url
	}
	return ""
}

func extractRepoURL(projectURLs map[string]string, homePage string) string {
	for _, key := range repoURLKeys {
		if url, ok := projectURLs[key]; ok && isRepoURL(url) {
			return url
		}
	}

	for _, url := range projectURLs {
		if isRepoURL(url) && !strings.Contains(url, "github.com/sponsors") {
			return url
		}
	}

	if isRepoURL(homePage) {
		return homePage
	}

	return ""
}

func isRepoURL(url string) bool {
	return strings.Contains(url, "github.com") ||
		strings.Contains(url, "gitlab.com") ||
		strings.Contains(url, "bitbucket.org") ||
		strings.Contains(url, "codeberg.org")
}

// parseKeywords splits PyPI's single keywords string, which is either
// comma-separated or whitespace-separated.
func parseKeywords(keywords string) []string {
	if keywords == "" {
		return nil
	}

	if strings.Contains(keywords, ",") {
		parts := strings.Split(keywords, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				result = append(result, p)
			}
		}
		return result
	}

	return strings.Fields(keywords)
}
