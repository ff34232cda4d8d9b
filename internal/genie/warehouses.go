package genie

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const warehousesPath = "/api/2.0/sql/warehouses"

// Warehouse describes a SQL warehouse that can back a space.
type Warehouse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	State         string `json:"state,omitempty"`
	ClusterSize   string `json:"cluster_size,omitempty"`
	WarehouseType string `json:"warehouse_type,omitempty"`
}

// ListWarehousesResponse is the SQL warehouses listing.
type ListWarehousesResponse struct {
	Warehouses []Warehouse `json:"warehouses"`
}

// ListWarehouses returns the workspace's serverless/pro SQL warehouses.
// Classic warehouses cannot back a space and are filtered out.
func (c *Client) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	var resp ListWarehousesResponse
	if err := c.doPath(ctx, http.MethodGet, warehousesPath, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing warehouses: %w", err)
	}
	out := make([]Warehouse, 0, len(resp.Warehouses))
	for _, w := range resp.Warehouses {
		if w.WarehouseType == "CLASSIC" {
			continue
		}
		if w.State == "" {
			w.State = "UNKNOWN"
		}
		out = append(out, w)
	}
	return out, nil
}

// sizePreference orders cluster sizes per purpose, smallest-first for
// development and largest-first for production.
var sizePreference = map[string][]string{
	"development": {"2X-Small", "X-Small", "Small"},
	"production":  {"Large", "Medium"},
}

// RecommendWarehouse picks a warehouse for the given purpose. RUNNING
// warehouses win to avoid cold starts, then the purpose's size
// preference, then any candidate. Returns "" when the list is empty.
func RecommendWarehouse(warehouses []Warehouse, purpose string) string {
	if len(warehouses) == 0 {
		return ""
	}

	var running, other []Warehouse
	for _, w := range warehouses {
		if w.State == "RUNNING" {
			running = append(running, w)
		} else {
			other = append(other, w)
		}
	}
	candidates := running
	if len(candidates) == 0 {
		candidates = other
	}

	for _, size := range sizePreference[purpose] {
		for _, w := range candidates {
			if strings.Contains(strings.ToLower(w.ClusterSize), strings.ToLower(size)) {
				return w.ID
			}
		}
	}
	return candidates[0].ID
}
