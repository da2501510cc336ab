// Package aid implements the aid request lifecycle: submission, the
// pending -> in-progress -> helped state machine, and the visibility rules
// applied when an NGO lists requests.
package aid

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"aidconnect/internal/store"
	"aidconnect/internal/utils"
	"aidconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

// ObjectStorage persists uploaded images and returns a public URL for the
// stored object.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	logger   *logrus.Logger
	requests *store.RequestRepository
	ngos     *store.NGORepository
	storage  ObjectStorage
}

func NewService(
	logger *logrus.Logger,
	requests *store.RequestRepository,
	ngos *store.NGORepository,
	storage ObjectStorage,
) *Service {
	return &Service{
		logger:   logger,
		requests: requests,
		ngos:     ngos,
		storage:  storage,
	}
}

type SubmitInput struct {
	Name        string
	Location    string
	Description string
	Filename    string
	ContentType string
	File        io.Reader
}

// Submit validates the submission, stores the image, and only then appends
// the new pending record. A failed upload leaves the collection untouched.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*types.AidRequest, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, types.ValidationError{Field: "name"}
	case strings.TrimSpace(in.Location) == "":
		return nil, types.ValidationError{Field: "location"}
	case strings.TrimSpace(in.Description) == "":
		return nil, types.ValidationError{Field: "description"}
	case in.File == nil || in.Filename == "":
		return nil, types.ValidationError{Field: "file"}
	}

	key := fmt.Sprintf("%s/%s", utils.NanoID(), in.Filename)

	imageURL, err := s.storage.Upload(ctx, key, in.File, in.ContentType)
	if err != nil {
		s.logger.WithError(err).Error("failed to upload aid request image")
		return nil, fmt.Errorf("%w: upload image: %s", types.ErrExternalService, err)
	}

	request := types.AidRequest{
		ID:          utils.NanoID(),
		Name:        strings.TrimSpace(in.Name),
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    imageURL,
		Timestamp:   time.Now().UTC(),
		Status:      types.RequestStatusPending,
		HelpedBy:    "",
	}

	if err := s.requests.Append(ctx, request); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": request.ID,
		"location":   request.Location,
	}).Info("aid request submitted")

	return &request, nil
}

// Claim moves a pending or in-progress request to in-progress on behalf of
// organization. Re-claiming an in-progress request reassigns helpedBy; no
// ownership lock is enforced. A helped request is terminal and cannot be
// claimed again.
func (s *Service) Claim(ctx context.Context, id, organization string) error {
	if strings.TrimSpace(organization) == "" {
		return types.ValidationError{Field: "ngoName"}
	}

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if request.Status == types.RequestStatusHelped {
		return types.ErrRequestClosed
	}

	request.Status = types.RequestStatusInProgress
	request.HelpedBy = organization

	if err := s.requests.Update(ctx, *request); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":   id,
		"organization": organization,
	}).Info("aid request claimed")

	return nil
}

// MarkHelped moves an in-progress request to helped. A request that was
// never claimed is rejected rather than silently completed; marking an
// already helped request is a no-op.
func (s *Service) MarkHelped(ctx context.Context, id string) error {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return err
	}

	switch request.Status {
	case types.RequestStatusPending:
		return types.ErrRequestNotClaimed
	case types.RequestStatusHelped:
		return nil
	}

	request.Status = types.RequestStatusHelped

	if err := s.requests.Update(ctx, *request); err != nil {
		return err
	}

	s.logger.WithField("request_id", id).Info("aid request marked helped")

	return nil
}

// ListFor returns every pending request plus every request the NGO bound to
// username has claimed, ordered pending, in-progress, helped. The sort is
// stable: equal statuses keep insertion order.
func (s *Service) ListFor(ctx context.Context, username string) ([]types.AidRequest, error) {
	ngo, err := s.ngos.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.All(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]types.AidRequest, 0, len(requests))
	for _, request := range requests {
		if request.Status == types.RequestStatusPending || request.HelpedBy == ngo.Organization {
			visible = append(visible, request)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Status.Rank() < visible[j].Status.Rank()
	})

	return visible, nil
}

// ClaimedBy returns the requests the NGO bound to username has taken over,
// in insertion order. Pending requests are not included.
func (s *Service) ClaimedBy(ctx context.Context, username string) ([]types.AidRequest, error) {
	ngo, err := s.ngos.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.All(ctx)
	if err != nil {
		return nil, err
	}

	claimed := make([]types.AidRequest, 0)
	for _, request := range requests {
		if request.HelpedBy == ngo.Organization {
			claimed = append(claimed, request)
		}
	}

	return claimed, nil
}

// All returns the full request listing in insertion order, for the
// administrator view.
func (s *Service) All(ctx context.Context) ([]types.AidRequest, error) {
	return s.requests.All(ctx)
}

// DeleteAt removes the request at the given position in the full listing.
// The index is only meaningful against a freshly fetched listing.
func (s *Service) DeleteAt(ctx context.Context, index int) error {
	return s.requests.DeleteAt(ctx, index)
}

func (s *Service) DeleteByID(ctx context.Context, id string) error {
	return s.requests.DeleteByID(ctx, id)
}
