package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/miniairbnb/client/internal/models"
)

// ImageFile is an image selected for upload.
type ImageFile struct {
	Filename string
	Reader   io.Reader
}

// ListProperties fetches all active listings, optionally narrowed by the
// server-side city/country filters.
func (c *Client) ListProperties(ctx context.Context, city, country string) ([]models.Property, error) {
	params := url.Values{}
	if city != "" {
		params.Set("city", city)
	}
	if country != "" {
		params.Set("country", country)
	}
	path := "/properties"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var properties []models.Property
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// GetProperty fetches a single listing by ID.
func (c *Client) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	var property models.Property
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/properties/%d", id), nil, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// MyProperties fetches the listings owned by the current host.
func (c *Client) MyProperties(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := c.doJSON(ctx, http.MethodGet, "/properties/my-properties", nil, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// CreateProperty submits a new listing. The property fields travel as a JSON
// part named "property" and each image as a file part named "images".
func (c *Client) CreateProperty(ctx context.Context, input models.PropertyInput, images []ImageFile) (*models.Property, error) {
	return c.sendProperty(ctx, http.MethodPost, "/properties", input, images)
}

// UpdateProperty saves changes to an existing listing, with the same
// multipart layout as CreateProperty.
func (c *Client) UpdateProperty(ctx context.Context, id int, input models.PropertyInput, images []ImageFile) (*models.Property, error) {
	return c.sendProperty(ctx, http.MethodPut, fmt.Sprintf("/properties/%d", id), input, images)
}

// DeleteProperty removes a listing.
func (c *Client) DeleteProperty(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/properties/%d", id), nil, nil)
}

// sendProperty builds and sends the multipart property payload.
func (c *Client) sendProperty(ctx context.Context, method, path string, input models.PropertyInput, images []ImageFile) (*models.Property, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	encoded, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode property: %w", err)
	}
	if err := writer.WriteField("property", string(encoded)); err != nil {
		return nil, fmt.Errorf("failed to write property field: %w", err)
	}

	for _, image := range images {
		part, err := writer.CreateFormFile("images", image.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, image.Reader); err != nil {
			return nil, fmt.Errorf("failed to copy image %s: %w", image.Filename, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var property models.Property
	if err := c.send(req, &property); err != nil {
		return nil, err
	}
	return &property, nil
}
