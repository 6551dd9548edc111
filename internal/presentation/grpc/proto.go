package grpc

// proto.go declares the jobguard.v1.JobGuardService surface by hand. Messages
// travel as JSON under the CodecName content subtype.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/domain/model"
)

const serviceName = "jobguard.v1.JobGuardService"

// JobGuardServiceServer is the server API for JobGuardService.
type JobGuardServiceServer interface {
	AssessPosting(context.Context, *AssessPostingRequest) (*dto.AssessmentResponse, error)
	AssessURL(context.Context, *AssessURLRequest) (*dto.AssessmentResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*dto.HistoryItem, error)
	ListAssessments(context.Context, *ListAssessmentsRequest) (*dto.ListAssessmentsResponse, error)
	ClearHistory(context.Context, *ClearHistoryRequest) (*dto.ClearHistoryResponse, error)
	SubmitFeedback(context.Context, *SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error)
	ReportScam(context.Context, *ReportScamRequest) (*dto.ReportScamResponse, error)
	CheckBlacklist(context.Context, *CheckBlacklistRequest) (*dto.CheckBlacklistResponse, error)
	BlacklistOverview(context.Context, *BlacklistOverviewRequest) (*dto.BlacklistOverviewResponse, error)
	CheckDomain(context.Context, *CheckDomainRequest) (*model.URLAnalysis, error)
	VerifyCompany(context.Context, *VerifyCompanyRequest) (*model.CompanyVerification, error)
	GetAnalytics(context.Context, *GetAnalyticsRequest) (*dto.AnalyticsResponse, error)
	mustEmbedUnimplementedJobGuardServiceServer()
}

// UnimplementedJobGuardServiceServer provides forward-compatible default implementations.
type UnimplementedJobGuardServiceServer struct{}

func (UnimplementedJobGuardServiceServer) AssessPosting(context.Context, *AssessPostingRequest) (*dto.AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessPosting not implemented")
}
func (UnimplementedJobGuardServiceServer) AssessURL(context.Context, *AssessURLRequest) (*dto.AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessURL not implemented")
}
func (UnimplementedJobGuardServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*dto.HistoryItem, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedJobGuardServiceServer) ListAssessments(context.Context, *ListAssessmentsRequest) (*dto.ListAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAssessments not implemented")
}
func (UnimplementedJobGuardServiceServer) ClearHistory(context.Context, *ClearHistoryRequest) (*dto.ClearHistoryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ClearHistory not implemented")
}
func (UnimplementedJobGuardServiceServer) SubmitFeedback(context.Context, *SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitFeedback not implemented")
}
func (UnimplementedJobGuardServiceServer) ReportScam(context.Context, *ReportScamRequest) (*dto.ReportScamResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReportScam not implemented")
}
func (UnimplementedJobGuardServiceServer) CheckBlacklist(context.Context, *CheckBlacklistRequest) (*dto.CheckBlacklistResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckBlacklist not implemented")
}
func (UnimplementedJobGuardServiceServer) BlacklistOverview(context.Context, *BlacklistOverviewRequest) (*dto.BlacklistOverviewResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BlacklistOverview not implemented")
}
func (UnimplementedJobGuardServiceServer) CheckDomain(context.Context, *CheckDomainRequest) (*model.URLAnalysis, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckDomain not implemented")
}
func (UnimplementedJobGuardServiceServer) VerifyCompany(context.Context, *VerifyCompanyRequest) (*model.CompanyVerification, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VerifyCompany not implemented")
}
func (UnimplementedJobGuardServiceServer) GetAnalytics(context.Context, *GetAnalyticsRequest) (*dto.AnalyticsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAnalytics not implemented")
}
func (UnimplementedJobGuardServiceServer) mustEmbedUnimplementedJobGuardServiceServer() {}

// AssessPostingRequest represents the proto AssessPostingRequest message.
type AssessPostingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	URL         string `json:"url"`
}

// AssessURLRequest represents the proto AssessURLRequest message.
type AssessURLRequest struct {
	URL string `json:"url"`
}

// GetAssessmentRequest represents the proto GetAssessmentRequest message.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// ListAssessmentsRequest represents the proto ListAssessmentsRequest message.
type ListAssessmentsRequest struct {
	Limit int32 `json:"limit"`
}

// ClearHistoryRequest represents the proto ClearHistoryRequest message.
type ClearHistoryRequest struct{}

// SubmitFeedbackRequest represents the proto SubmitFeedbackRequest message.
type SubmitFeedbackRequest struct {
	AssessmentID string `json:"assessment_id"`
	Title        string `json:"title"`
	ActualResult string `json:"actual_result"`
	Correct      bool   `json:"correct"`
}

// ReportScamRequest represents the proto ReportScamRequest message.
type ReportScamRequest struct {
	URL      string `json:"url"`
	Company  string `json:"company"`
	Details  string `json:"details"`
	Severity string `json:"severity"`
}

// CheckBlacklistRequest represents the proto CheckBlacklistRequest message.
type CheckBlacklistRequest struct {
	URL     string `json:"url"`
	Company string `json:"company"`
}

// BlacklistOverviewRequest represents the proto BlacklistOverviewRequest message.
type BlacklistOverviewRequest struct {
	Limit int32 `json:"limit"`
}

// CheckDomainRequest represents the proto CheckDomainRequest message.
type CheckDomainRequest struct {
	URL string `json:"url"`
}

// VerifyCompanyRequest represents the proto VerifyCompanyRequest message.
type VerifyCompanyRequest struct {
	Company string `json:"company"`
}

// GetAnalyticsRequest represents the proto GetAnalyticsRequest message.
type GetAnalyticsRequest struct{}

// RegisterJobGuardServiceServer registers the JobGuardServiceServer with the gRPC server.
func RegisterJobGuardServiceServer(s grpclib.ServiceRegistrar, srv JobGuardServiceServer) {
	s.RegisterService(&_JobGuardService_serviceDesc, srv)
}

var _JobGuardService_serviceDesc = grpclib.ServiceDesc{ //nolint:revive
	ServiceName: serviceName,
	HandlerType: (*JobGuardServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		unaryMethod("AssessPosting", JobGuardServiceServer.AssessPosting),
		unaryMethod("AssessURL", JobGuardServiceServer.AssessURL),
		unaryMethod("GetAssessment", JobGuardServiceServer.GetAssessment),
		unaryMethod("ListAssessments", JobGuardServiceServer.ListAssessments),
		unaryMethod("ClearHistory", JobGuardServiceServer.ClearHistory),
		unaryMethod("SubmitFeedback", JobGuardServiceServer.SubmitFeedback),
		unaryMethod("ReportScam", JobGuardServiceServer.ReportScam),
		unaryMethod("CheckBlacklist", JobGuardServiceServer.CheckBlacklist),
		unaryMethod("BlacklistOverview", JobGuardServiceServer.BlacklistOverview),
		unaryMethod("CheckDomain", JobGuardServiceServer.CheckDomain),
		unaryMethod("VerifyCompany", JobGuardServiceServer.VerifyCompany),
		unaryMethod("GetAnalytics", JobGuardServiceServer.GetAnalytics),
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "jobguard/v1/jobguard.proto",
}

// FullMethod returns the fully-qualified name of a JobGuardService method.
func FullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

// unaryMethod builds the descriptor a generated _Handler function would provide.
func unaryMethod[Req, Resp any](name string, call func(JobGuardServiceServer, context.Context, *Req) (*Resp, error)) grpclib.MethodDesc {
	return grpclib.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(JobGuardServiceServer), ctx, in)
			}
			info := &grpclib.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(JobGuardServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
