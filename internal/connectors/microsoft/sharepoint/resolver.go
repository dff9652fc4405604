package sharepoint

import (
	"fmt"
	"net/url"
)

// ListURL returns the children endpoint of the site's default drive root.
func ListURL(cfg *Config) string {
	return fmt.Sprintf("%s/sites/%s/drive/root/children?$top=%d",
		cfg.GraphBaseURL, cfg.SiteID, cfg.MaxResults)
}

// ContentURL returns the content endpoint of a drive item.
// The item id is path-escaped.
func ContentURL(cfg *Config, fileID string) string {
	return fmt.Sprintf("%s/sites/%s/drive/items/%s/content",
		cfg.GraphBaseURL, cfg.SiteID, url.PathEscape(fileID))
}
