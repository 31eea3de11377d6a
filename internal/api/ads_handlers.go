package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/altusecase/altuse-server/internal/domain"
)

func (s *Server) registerAdRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAdSettings",
		Method:      http.MethodGet,
		Path:        "/api/v1/ads/settings",
		Summary:     "List ad settings",
		Description: "Returns all ad placement settings",
		Tags:        []string{"Ads"},
	}, s.handleListAdSettings)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAdSetting",
		Method:      http.MethodGet,
		Path:        "/api/v1/ads/settings/{key}",
		Summary:     "Get ad setting",
		Description: "Returns one ad placement setting by key",
		Tags:        []string{"Ads"},
	}, s.handleGetAdSetting)

	huma.Register(s.api, huma.Operation{
		OperationID: "upsertAdSetting",
		Method:      http.MethodPut,
		Path:        "/api/v1/ads/settings/{key}",
		Summary:     "Save ad setting",
		Description: "Creates or replaces the setting for a placement key",
		Tags:        []string{"Ads"},
	}, s.handleUpsertAdSetting)
}

type AdSettingResponse struct {
	ID           string    `json:"id" doc:"Setting ID"`
	SettingKey   string    `json:"setting_key" doc:"Placement key"`
	SettingValue string    `json:"setting_value" doc:"Raw snippet or slot identifier"`
	IsEnabled    bool      `json:"is_enabled" doc:"Whether the placement is served"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last change time"`
}

func adSettingResponse(setting *domain.AdSetting) AdSettingResponse {
	return AdSettingResponse{
		ID:           setting.ID,
		SettingKey:   setting.SettingKey,
		SettingValue: setting.SettingValue,
		IsEnabled:    setting.IsEnabled,
		UpdatedAt:    setting.UpdatedAt,
	}
}

type ListAdSettingsResponse struct {
	Settings []AdSettingResponse `json:"settings" doc:"All placements"`
}

type ListAdSettingsOutput struct {
	Body ListAdSettingsResponse
}

func (s *Server) handleListAdSettings(ctx context.Context, _ *struct{}) (*ListAdSettingsOutput, error) {
	settings, err := s.services.Ads.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := ListAdSettingsResponse{Settings: make([]AdSettingResponse, len(settings))}
	for i, setting := range settings {
		resp.Settings[i] = adSettingResponse(setting)
	}
	return &ListAdSettingsOutput{Body: resp}, nil
}

type GetAdSettingInput struct {
	Key string `path:"key" doc:"Placement key"`
}

type AdSettingOutput struct {
	Body AdSettingResponse
}

func (s *Server) handleGetAdSetting(ctx context.Context, input *GetAdSettingInput) (*AdSettingOutput, error) {
	setting, err := s.services.Ads.Get(ctx, input.Key)
	if err != nil {
		return nil, err
	}
	return &AdSettingOutput{Body: adSettingResponse(setting)}, nil
}

type UpsertAdSettingRequest struct {
	SettingValue string `json:"setting_value" doc:"Raw snippet or slot identifier"`
	IsEnabled    bool   `json:"is_enabled" doc:"Whether the placement is served"`
}

type UpsertAdSettingInput struct {
	Key  string `path:"key" doc:"Placement key"`
	Body UpsertAdSettingRequest
}

func (s *Server) handleUpsertAdSetting(ctx context.Context, input *UpsertAdSettingInput) (*AdSettingOutput, error) {
	setting, err := s.services.Ads.Upsert(ctx, input.Key, input.Body.SettingValue, input.Body.IsEnabled)
	if err != nil {
		return nil, err
	}
	return &AdSettingOutput{Body: adSettingResponse(setting)}, nil
}
