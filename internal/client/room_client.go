package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"roombooking/internal/db"
)

// RoomClient looks rooms up in the external room directory over REST.
type RoomClient struct {
	baseURL string
	http    *http.Client
}

func NewRoomClient(baseURL string) *RoomClient {
	return &RoomClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type roomResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// GetRoom returns (nil, nil) when the directory answers 404; any other
// non-2xx status or transport failure is an error the caller treats as
// transient.
func (c *RoomClient) GetRoom(ctx context.Context, roomID string) (*db.Room, error) {
	url := fmt.Sprintf("%s/v1/room/%s", c.baseURL, roomID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building room request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logrus.WithField("room_id", roomID).WithError(err).Error("room directory call failed")
		return nil, fmt.Errorf("calling room directory: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("room directory returned status %d", resp.StatusCode)
	}

	var body roomResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding room response: %w", err)
	}

	return &db.Room{ID: body.ID, Status: db.RoomStatus(body.Status)}, nil
}
