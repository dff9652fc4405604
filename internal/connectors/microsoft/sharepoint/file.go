package sharepoint

import (
	"strings"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
)

// DriveItem represents a SharePoint document library item from the Graph API.
type DriveItem struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ModifiedDateTime string           `json:"lastModifiedDateTime"`
	File             *FileInfo        `json:"file,omitempty"`
	Folder           *FolderInfo      `json:"folder,omitempty"`
	ParentReference  *ParentReference `json:"parentReference,omitempty"`
}

// FileInfo contains file-specific metadata.
type FileInfo struct {
	MIMEType string `json:"mimeType"`
}

// FolderInfo contains folder-specific metadata.
type FolderInfo struct {
	ChildCount int `json:"childCount"`
}

// ParentReference contains parent folder information.
type ParentReference struct {
	Path string `json:"path"`
}

// listResponse is one page of a children listing.
type listResponse struct {
	Value []DriveItem `json:"value"`
}

// IsFile returns true if the item carries a file facet.
// Folders, notebooks and other facets are not files.
func (d *DriveItem) IsFile() bool {
	return d.File != nil
}

// GetMIMEType returns the file's MIME type, or "" for non-files.
func (d *DriveItem) GetMIMEType() string {
	if d.File != nil {
		return d.File.MIMEType
	}
	return ""
}

// GetType returns the subtype portion of the MIME type, i.e. everything
// after the last "/".
func (d *DriveItem) GetType() string {
	mimeType := d.GetMIMEType()
	return mimeType[strings.LastIndex(mimeType, "/")+1:]
}

// GetPath returns the library-relative path: the part of the parent path
// after the last RootPathMarker, a slash, then the item name.
func (d *DriveItem) GetPath() string {
	parent := ""
	if d.ParentReference != nil {
		parent = d.ParentReference.Path
	}
	if i := strings.LastIndex(parent, RootPathMarker); i >= 0 {
		parent = parent[i+len(RootPathMarker):]
	}
	return parent + "/" + d.Name
}

// ToFileEntry converts a DriveItem to a listing entry.
func ToFileEntry(item *DriveItem) domain.FileEntry {
	return domain.FileEntry{
		Name:         item.Name,
		FileID:       item.ID,
		Type:         item.GetType(),
		LastModified: item.ModifiedDateTime,
		Path:         item.GetPath(),
	}
}

// FilesToEntries keeps the files of items, in order, as listing entries.
// The result is never nil.
func FilesToEntries(items []DriveItem) []domain.FileEntry {
	entries := make([]domain.FileEntry, 0, len(items))
	for i := range items {
		if !items[i].IsFile() {
			continue
		}
		entries = append(entries, ToFileEntry(&items[i]))
	}
	return entries
}
