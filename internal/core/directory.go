package core

import (
	"context"
	"strings"

	"trainerdex/pkg/domain"
)

const (
	opFetchOtherTrainers   = "fetch_other_trainers"
	opFetchTrainerByID     = "fetch_trainer_by_id"
	opFilterTrainersByType = "filter_trainers_by_type"
	opInsertTrainer        = "insert_trainer"
	opUpdateTrainer        = "update_trainer"
	opDeleteTrainer        = "delete_trainer"
)

// FetchOtherTrainers lists the directory in insertion order.
func (s *Service) FetchOtherTrainers(ctx context.Context) ([]Trainer, error) {
	return read(ctx, s, opFetchOtherTrainers, "", func(view TransactionView) ([]Trainer, error) {
		return view.ListTrainers(), nil
	})
}

// FetchTrainerByID looks a directory trainer up. A missing id yields false,
// not an error.
func (s *Service) FetchTrainerByID(ctx context.Context, id string) (Trainer, bool, error) {
	type found struct {
		trainer Trainer
		ok      bool
	}
	out, err := read(ctx, s, opFetchTrainerByID, id, func(view TransactionView) (found, error) {
		t, ok := view.FindTrainer(id)
		return found{t, ok}, nil
	})
	return out.trainer, out.ok, err
}

// FilterTrainersByType returns directory trainers whose favorite type matches
// pokemonType, ignoring case. An empty type or "all" returns everyone.
func (s *Service) FilterTrainersByType(ctx context.Context, pokemonType string) ([]Trainer, error) {
	pokemonType = strings.TrimSpace(pokemonType)
	return read(ctx, s, opFilterTrainersByType, pokemonType, func(view TransactionView) ([]Trainer, error) {
		all := view.ListTrainers()
		if pokemonType == "" || strings.EqualFold(pokemonType, "all") {
			return all, nil
		}
		out := make([]Trainer, 0, len(all))
		for _, t := range all {
			if strings.EqualFold(t.FavoriteType, pokemonType) {
				out = append(out, t)
			}
		}
		return out, nil
	})
}

// InsertTrainer validates req, assigns an id and join date and appends the
// trainer to the directory. An unknown region fails with InvalidRegionError
// before anything is written.
func (s *Service) InsertTrainer(ctx context.Context, req NewTrainer) (Trainer, Result, error) {
	return mutate(ctx, s, opInsertTrainer, req.Name, func(tx Transaction) (Trainer, error) {
		if err := req.Validate(); err != nil {
			return Trainer{}, err
		}
		return tx.CreateTrainer(req.Trainer())
	}, trainerID)
}

// UpdateTrainer shallow-merges update into a directory trainer. A supplied
// region or favorite type is checked the same way as on insert.
func (s *Service) UpdateTrainer(ctx context.Context, id string, update TrainerUpdate) (Trainer, Result, error) {
	return mutate(ctx, s, opUpdateTrainer, id, func(tx Transaction) (Trainer, error) {
		return tx.UpdateTrainer(id, func(t *Trainer) error {
			if update.Region != nil {
				if err := domain.CheckRegion(*update.Region); err != nil {
					return err
				}
			}
			if update.FavoriteType != nil && *update.FavoriteType != "" && !domain.IsPokemonType(*update.FavoriteType) {
				return domain.ValidationError{Field: "favoriteType", Value: *update.FavoriteType, Reason: "unknown pokemon type"}
			}
			update.Apply(t)
			return nil
		})
	}, trainerID)
}

// DeleteTrainer removes a directory trainer.
func (s *Service) DeleteTrainer(ctx context.Context, id string) (Result, error) {
	_, res, err := mutate(ctx, s, opDeleteTrainer, id, func(tx Transaction) (struct{}, error) {
		return struct{}{}, tx.DeleteTrainer(id)
	}, nil)
	return res, err
}
