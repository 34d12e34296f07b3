package usecase

import (
	"context"
	"log/slog"

	"jobbridge-backend/internal/domain"
	"jobbridge-backend/pkg/apperror"
)

type jobUsecase struct {
	liveJobs domain.LiveJobRepository
	demoJobs domain.JobRepository
	// liveApps annotates listings with the caller's own application. It may be
	// backed by the elevated service-role pool when one is configured.
	liveApps domain.ApplicationRepository
	demoApps domain.ApplicationRepository
	profiles domain.ProfileRepository
	markets  domain.MarketRepository
}

func NewJobUsecase(
	liveJobs domain.LiveJobRepository,
	demoJobs domain.JobRepository,
	liveApps domain.ApplicationRepository,
	demoApps domain.ApplicationRepository,
	profiles domain.ProfileRepository,
	markets domain.MarketRepository,
) domain.JobUsecase {
	return &jobUsecase{
		liveJobs: liveJobs,
		demoJobs: demoJobs,
		liveApps: liveApps,
		demoApps: demoApps,
		profiles: profiles,
		markets:  markets,
	}
}

// jobsRepo picks the partition. The choice is made once per operation; no
// operation may touch both partitions.
func (u *jobUsecase) jobsRepo(view *domain.EffectiveView) domain.JobRepository {
	if view.IsDemo() {
		return u.demoJobs
	}
	return u.liveJobs
}

func (u *jobUsecase) appsRepo(view *domain.EffectiveView) domain.ApplicationRepository {
	if view.IsDemo() {
		return u.demoApps
	}
	return u.liveApps
}

func (u *jobUsecase) FetchJobs(ctx context.Context, params domain.FetchJobsParams) ([]domain.JobsListItem, error) {
	limit := params.Limit
	if limit <= 0 || limit > domain.DefaultJobsLimit {
		limit = domain.DefaultJobsLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	repo := u.jobsRepo(params.View)

	var jobs []domain.Job
	var err error
	switch params.Mode {
	case domain.FetchModeFeed:
		status := params.Status
		if status == "" {
			status = domain.JobStatusOpen
		}
		jobs, err = repo.FetchFeed(ctx, params.MarketID, status, limit, offset)
	case domain.FetchModeMyJobs:
		jobs, err = repo.FetchByOwner(ctx, params.UserID, limit, offset)
	default:
		return nil, apperror.BadRequest("Unbekannter Abrufmodus: " + string(params.Mode))
	}
	if err != nil {
		return nil, apperror.Datastore("fetch_jobs", err)
	}

	items := make([]domain.JobsListItem, len(jobs))
	for i, j := range jobs {
		items[i] = domain.JobsListItem{Job: j}
	}

	if params.Mode == domain.FetchModeFeed {
		u.annotateApplications(ctx, params.View, params.UserID, items)
	}
	u.enrich(ctx, items)
	return items, nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, view *domain.EffectiveView, userID, jobID string) (*domain.JobsListItem, error) {
	job, err := u.jobsRepo(view).GetByID(ctx, jobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job nicht gefunden")
		}
		return nil, apperror.Datastore("get_job", err)
	}

	items := []domain.JobsListItem{{Job: *job}}
	if job.PostedBy != userID {
		u.annotateApplications(ctx, view, userID, items)
	}
	u.enrich(ctx, items)
	if !view.IsDemo() {
		u.attachPrivateDetails(ctx, userID, &items[0])
	}
	return &items[0], nil
}

// attachPrivateDetails reveals the non-public address when the reveal policy
// allows it for this caller. Unknown policies reveal nothing.
func (u *jobUsecase) attachPrivateDetails(ctx context.Context, userID string, item *domain.JobsListItem) {
	if !addressRevealed(userID, item) {
		return
	}
	details, err := u.liveJobs.GetPrivateDetails(ctx, item.ID)
	if err != nil {
		if err != domain.ErrNotFound {
			slog.Warn("private details lookup failed", "job_id", item.ID, "error", err)
		}
		return
	}
	item.PrivateDetails = details
}

func addressRevealed(userID string, item *domain.JobsListItem) bool {
	if item.PostedBy == userID {
		return true
	}
	if item.ApplicationStatus == nil {
		return item.AddressRevealPolicy == domain.AddressRevealPublic
	}
	switch item.AddressRevealPolicy {
	case domain.AddressRevealPublic:
		return true
	case domain.AddressRevealAfterAccept:
		return *item.ApplicationStatus == domain.ApplicationStatusAccepted
	case domain.AddressRevealOnReview:
		return *item.ApplicationStatus == domain.ApplicationStatusAccepted ||
			*item.ApplicationStatus == domain.ApplicationStatusNegotiating
	}
	return false
}

// annotateApplications marks each listed job with the caller's own application,
// if any. Failure here degrades the listing, it never fails it.
func (u *jobUsecase) annotateApplications(ctx context.Context, view *domain.EffectiveView, userID string, items []domain.JobsListItem) {
	if userID == "" || len(items) == 0 {
		return
	}
	apps, err := u.appsRepo(view).GetByUserID(ctx, userID)
	if err != nil {
		slog.Warn("application annotation failed, listing returned unannotated",
			"user_id", userID, "error", err)
		return
	}
	byJob := make(map[string]*domain.Application, len(apps))
	for i := range apps {
		byJob[apps[i].JobID] = &apps[i]
	}
	for i := range items {
		if app, ok := byJob[items[i].ID]; ok {
			items[i].IsApplied = true
			items[i].ApplicationID = &app.ID
			items[i].ApplicationStatus = &app.Status
		}
	}
}

// enrich attaches market and creator display metadata. Both lookups are
// batched and non-fatal.
func (u *jobUsecase) enrich(ctx context.Context, items []domain.JobsListItem) {
	if len(items) == 0 {
		return
	}

	marketIDs := make([]string, 0, len(items))
	creatorIDs := make([]string, 0, len(items))
	seenMarket := make(map[string]bool)
	seenCreator := make(map[string]bool)
	for i := range items {
		if items[i].MarketID != nil && !seenMarket[*items[i].MarketID] {
			seenMarket[*items[i].MarketID] = true
			marketIDs = append(marketIDs, *items[i].MarketID)
		}
		if !seenCreator[items[i].PostedBy] {
			seenCreator[items[i].PostedBy] = true
			creatorIDs = append(creatorIDs, items[i].PostedBy)
		}
	}

	marketNames := make(map[string]string)
	if markets, err := u.markets.GetByIDs(ctx, marketIDs); err != nil {
		slog.Warn("market enrichment failed", "error", err)
	} else {
		for _, m := range markets {
			marketNames[m.ID] = m.Name
		}
	}

	creators := make(map[string]domain.Profile)
	if profiles, err := u.profiles.GetByIDs(ctx, creatorIDs); err != nil {
		slog.Warn("creator enrichment failed", "error", err)
	} else {
		for _, p := range profiles {
			creators[p.ID] = p
		}
	}

	for i := range items {
		if items[i].MarketID != nil {
			if name, ok := marketNames[*items[i].MarketID]; ok {
				items[i].MarketName = &name
			}
		}
		if p, ok := creators[items[i].PostedBy]; ok {
			name := p.DisplayName
			verified := p.Verified
			items[i].CreatorName = &name
			items[i].CreatorVerified = &verified
		}
	}
}

// CreateJob creates a posting. In the live partition the atomic stored
// procedure is tried first; when it fails the job row is written directly and
// the private-details sidecar is attempted separately. A failed sidecar write
// after a successful job insert yields a partial outcome the caller can resume
// via RetrySaveJobPrivateDetails.
func (u *jobUsecase) CreateJob(ctx context.Context, view *domain.EffectiveView, userID string, job *domain.Job, details *domain.JobPrivateDetails) (*domain.CreateJobOutcome, error) {
	if view.ViewRole != domain.AccountTypeJobProvider {
		return nil, apperror.Forbidden("Nur Anbieter können Jobs erstellen")
	}

	job.PostedBy = userID
	job.Status = domain.JobStatusOpen
	if job.HiringMode == "" {
		job.HiringMode = domain.HiringModeSingle
	}
	if job.AddressRevealPolicy == "" {
		job.AddressRevealPolicy = domain.AddressRevealAfterAccept
	}

	if view.IsDemo() {
		if err := u.demoJobs.Create(ctx, job); err != nil {
			return nil, apperror.Datastore("create_demo_job", err)
		}
		return &domain.CreateJobOutcome{
			Outcome:        domain.CreateOutcomeSuccess,
			JobID:          job.ID,
			PrivateDetails: domain.PrivateDetailsSkipped,
			CreatedVia:     domain.CreatedViaDemo,
		}, nil
	}

	jobID, rpcErr := u.liveJobs.CreateAtomic(ctx, job, details)
	if rpcErr == nil {
		job.ID = jobID
		pd := domain.PrivateDetailsOK
		if details == nil {
			pd = domain.PrivateDetailsSkipped
		}
		return &domain.CreateJobOutcome{
			Outcome:        domain.CreateOutcomeSuccess,
			JobID:          jobID,
			PrivateDetails: pd,
			CreatedVia:     domain.CreatedViaRPC,
		}, nil
	}
	slog.Warn("create_job_atomic failed, falling back to direct insert",
		"user_id", userID, "error", rpcErr)

	if err := u.liveJobs.Create(ctx, job); err != nil {
		return nil, apperror.Datastore("create_job", err)
	}

	if details == nil {
		return &domain.CreateJobOutcome{
			Outcome:        domain.CreateOutcomeSuccess,
			JobID:          job.ID,
			PrivateDetails: domain.PrivateDetailsSkipped,
			CreatedVia:     domain.CreatedViaTable,
		}, nil
	}

	details.JobID = job.ID
	if err := u.liveJobs.UpsertPrivateDetails(ctx, details); err != nil {
		slog.Error("private details write failed after job insert",
			"job_id", job.ID, "error", err)
		return &domain.CreateJobOutcome{
			Outcome:        domain.CreateOutcomePartial,
			JobID:          job.ID,
			PrivateDetails: domain.PrivateDetailsFailed,
			CreatedVia:     domain.CreatedViaTable,
			PrivateError:   apperror.ToErrorInfo(err, map[string]string{"job_id": job.ID}),
		}, nil
	}

	return &domain.CreateJobOutcome{
		Outcome:        domain.CreateOutcomeSuccess,
		JobID:          job.ID,
		PrivateDetails: domain.PrivateDetailsOK,
		CreatedVia:     domain.CreatedViaTable,
	}, nil
}

// RetrySaveJobPrivateDetails resumes a partial creation. The upsert is
// idempotent, so retrying a retry is harmless.
func (u *jobUsecase) RetrySaveJobPrivateDetails(ctx context.Context, userID, jobID string, details *domain.JobPrivateDetails) error {
	job, err := u.liveJobs.GetByID(ctx, jobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Job nicht gefunden")
		}
		return apperror.Datastore("get_job", err)
	}
	if job.PostedBy != userID {
		return apperror.Forbidden("Kein Zugriff auf diesen Job")
	}

	details.JobID = jobID
	if err := u.liveJobs.UpsertPrivateDetails(ctx, details); err != nil {
		return apperror.Datastore("upsert_private_details", err)
	}
	return nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, view *domain.EffectiveView, userID string, job *domain.Job) error {
	repo := u.jobsRepo(view)
	existing, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Job nicht gefunden")
		}
		return apperror.Datastore("get_job", err)
	}
	if existing.PostedBy != userID {
		return apperror.Forbidden("Kein Zugriff auf diesen Job")
	}

	if err := repo.Update(ctx, job); err != nil {
		return apperror.Datastore("update_job", err)
	}
	return nil
}

func (u *jobUsecase) CloseJob(ctx context.Context, view *domain.EffectiveView, userID, jobID string) error {
	repo := u.jobsRepo(view)
	existing, err := repo.GetByID(ctx, jobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Job nicht gefunden")
		}
		return apperror.Datastore("get_job", err)
	}
	if existing.PostedBy != userID {
		return apperror.Forbidden("Kein Zugriff auf diesen Job")
	}

	if err := repo.UpdateStatus(ctx, jobID, domain.JobStatusClosed); err != nil {
		return apperror.Datastore("close_job", err)
	}
	return nil
}
