package pets

import "context"

// OwnerOf expone la ONG dueña de una mascota.
// Se usa para evitar ciclos de imports entre módulos (pets <-> applications).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OngID, nil
}

// IDsByOng devuelve solo los ids de las mascotas de una ONG
// (el gestor de candidaturas filtra por estos ids).
func (s *Service) IDsByOng(ctx context.Context, ongID string) ([]string, error) {
	items, err := s.ListByOng(ctx, ongID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// SetStatus cambia el status sin chequeo de ownership: el caller
// (el gestor de candidaturas) ya validó que la ONG es dueña del pet.
func (s *Service) SetStatus(ctx context.Context, petID string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidInput
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	p.Status = status
	p.UpdatedAt = s.now()
	return s.repo.Update(ctx, p)
}
