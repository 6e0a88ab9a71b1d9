package director

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-clouds/core"
)

// MetadataAPI manages the metadata collection of a vApp template.
type MetadataAPI struct {
	dispatcher *core.Dispatcher
}

func (a *MetadataAPI) metadata(uri string) (resource, error) {
	return newResource(a.dispatcher, uri, MediaTypeMetadata)
}

func (a *MetadataAPI) Get(ctx context.Context, uri string) (*Metadata, error) {
	r, err := a.metadata(uri)
	if err != nil {
		return nil, err
	}
	return invoke[Metadata](ctx, r, OpVAppTemplateMetadataGet, nil, "metadata")
}

// Merge adds or replaces the given entries.
func (a *MetadataAPI) Merge(ctx context.Context, uri string, metadata *Metadata) (*Task, error) {
	r, err := a.metadata(uri)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateMetadataMerge, optional(metadata), "metadata")
}

func (a *MetadataAPI) GetValue(ctx context.Context, uri string, key string) (*MetadataValue, error) {
	r, segment, err := a.entry(uri, key)
	if err != nil {
		return nil, err
	}
	return invoke[MetadataValue](ctx, r, OpVAppTemplateMetadataEntryGet, nil, "metadata", segment)
}

func (a *MetadataAPI) PutEntry(ctx context.Context, uri string, key string, value *MetadataValue) (*Task, error) {
	r, segment, err := a.entry(uri, key)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateMetadataEntryPut, optional(value), "metadata", segment)
}

func (a *MetadataAPI) RemoveEntry(ctx context.Context, uri string, key string) (*Task, error) {
	r, segment, err := a.entry(uri, key)
	if err != nil {
		return nil, err
	}
	return invokeTask(ctx, r, OpVAppTemplateMetadataEntryRemove, nil, "metadata", segment)
}

func (a *MetadataAPI) entry(uri string, key string) (resource, string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return resource{}, "", fmt.Errorf("director: metadata key is required")
	}
	r, err := a.metadata(uri)
	if err != nil {
		return resource{}, "", err
	}
	return r, url.PathEscape(key), nil
}

func (MetadataValue) XMLRootName() string { return "MetadataValue" }
