package handler

import (
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/identity-server/internal/model"
)

func stringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

func boolField(s *structpb.Struct, name string) bool {
	return s.GetFields()[name].GetBoolValue()
}

// optionalString returns nil when the field is absent or null.
func optionalString(s *structpb.Struct, name string) (*string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return nil, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_StringValue:
		return &k.StringValue, nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "field %s must be a string", name)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func profileValue(p model.Profile) map[string]any {
	return map[string]any{
		"id":              p.ID.String(),
		"full_name":       p.FullName,
		"email":           p.Email,
		"mobile":          p.Mobile,
		"registered_at":   formatTime(p.RegisteredAt),
		"last_login_at":   formatTime(p.LastLoginAt),
		"membership":      string(p.Membership),
		"is_premium":      p.IsPremium(),
		"preferred_role":  p.PreferredRole,
		"profile_picture": p.ProfilePicture,
		"stats": map[string]any{
			"total_chats":       p.Stats.TotalChats,
			"files_uploaded":    p.Stats.FilesUploaded,
			"reports_generated": p.Stats.ReportsGenerated,
		},
	}
}

func sessionValue(res model.SessionResult) map[string]any {
	return map[string]any{
		"user":       profileValue(res.Profile),
		"token":      res.Token,
		"expires_at": formatTime(res.ExpiresAt),
	}
}

func newResponse(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}

func purposeField(s *structpb.Struct) model.OTPPurpose {
	return model.OTPPurpose(strings.ToLower(strings.TrimSpace(stringField(s, "purpose"))))
}
