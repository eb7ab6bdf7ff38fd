package usecases

import (
	"context"
	"math"

	"fnct-hackathon.backend/internal/domain/entities"
	"fnct-hackathon.backend/internal/domain/repositories"
	"golang.org/x/sync/errgroup"
)

// StatsUsecase builds the admin overview.
type StatsUsecase struct {
	candidateRepo  repositories.CandidateRepository
	teamRepo       repositories.TeamRepository
	membershipRepo repositories.MembershipRepository
	regionRepo     repositories.RegionRepository
	policy         Policy
}

func NewStatsUsecase(
	candidateRepo repositories.CandidateRepository,
	teamRepo repositories.TeamRepository,
	membershipRepo repositories.MembershipRepository,
	regionRepo repositories.RegionRepository,
	policy Policy,
) *StatsUsecase {
	return &StatsUsecase{
		candidateRepo:  candidateRepo,
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		regionRepo:     regionRepo,
		policy:         policy,
	}
}

// Overview runs the independent aggregate queries concurrently.
func (u *StatsUsecase) Overview(ctx context.Context) (*entities.AdminStats, error) {
	var (
		candidates int64
		byStatus   map[entities.TeamStatus]int64
		regions    []*entities.Region
		matrix     []entities.RegionThemeCount
		perRegion  map[entities.RegionCode]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		candidates, err = u.candidateRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = u.teamRepo.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		regions, err = u.regionRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		matrix, err = u.teamRepo.CountByRegionAndTheme(gctx)
		return err
	})
	g.Go(func() (err error) {
		perRegion, err = u.membershipRepo.CountByRegion(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &entities.AdminStats{
		TotalCandidates: candidates,
		ByStatus:        byStatus,
		Distribution:    make(map[entities.RegionCode]map[entities.Theme]int64, len(regions)),
		Regions:         make([]entities.RegionStats, len(regions)),
	}
	for _, n := range byStatus {
		stats.TotalTeams += n
	}
	totals := make(map[entities.RegionCode]int64, len(regions))
	for _, r := range regions {
		row := make(map[entities.Theme]int64, len(entities.AllThemes))
		for _, th := range entities.AllThemes {
			row[th] = 0
		}
		stats.Distribution[r.Code] = row
	}
	for _, cell := range matrix {
		if row, ok := stats.Distribution[cell.Region]; ok {
			row[cell.Theme] = cell.Count
		}
		totals[cell.Region] += cell.Count
	}

	g, gctx = errgroup.WithContext(ctx)
	for i, r := range regions {
		i, r := i, r
		g.Go(func() error {
			rs := entities.RegionStats{
				Region:     r.Code,
				Name:       r.Name,
				Total:      totals[r.Code],
				Quota:      u.policy.RegionQuota,
				Candidates: perRegion[r.Code],
			}
			for _, st := range juryValidatedStatuses {
				n, err := u.teamRepo.CountByRegionAndStatus(gctx, r.Code, st)
				if err != nil {
					return err
				}
				rs.JuryValidated += n
				if st == entities.TeamStatusFinalAccepted {
					rs.FinalAccepted = n
				}
			}
			if rs.Total > 0 {
				rs.ValidationRate = int(math.Round(float64(rs.JuryValidated) / float64(rs.Total) * 100))
			}
			stats.Regions[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
