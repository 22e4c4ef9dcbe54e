package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const prescriptionCols = `id, patient_id, doctor_id, type, instructions, pdf_url, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	p.ID = uuid.New()
	err = tx.QueryRow(ctx, `
		INSERT INTO prescriptions (id, patient_id, doctor_id, type, instructions, pdf_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		p.ID, p.PatientID, p.DoctorID, p.Type, p.Instructions, p.PDFURL,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert prescription: %w", err)
	}

	if err := insertMedications(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repoPG) GetByID(ctx context.Context, doctorID, id uuid.UUID) (*Prescription, error) {
	var p Prescription
	err := r.pool.QueryRow(ctx, `
		SELECT `+prescriptionCols+`
		FROM prescriptions
		WHERE id = $1 AND doctor_id = $2`,
		id, doctorID,
	).Scan(&p.ID, &p.PatientID, &p.DoctorID, &p.Type, &p.Instructions, &p.PDFURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, prescription_id, name, dosage, quantity, instructions, position, created_at
		FROM medications
		WHERE prescription_id = $1
		ORDER BY position`,
		p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.PrescriptionID, &m.Name, &m.Dosage, &m.Quantity,
			&m.Instructions, &m.Position, &m.CreatedAt); err != nil {
			return nil, err
		}
		p.Medications = append(p.Medications, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM prescriptions WHERE doctor_id = $1`, doctorID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.patient_id, p.doctor_id, p.type, p.instructions, p.pdf_url,
		       p.created_at, p.updated_at, pa.name, pa.cpf
		FROM prescriptions p
		JOIN patients pa ON pa.id = p.patient_id
		WHERE p.doctor_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`,
		doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.PatientID, &p.DoctorID, &p.Type, &p.Instructions,
			&p.PDFURL, &p.CreatedAt, &p.UpdatedAt, &p.PatientName, &p.PatientCPF); err != nil {
			return nil, 0, err
		}
		items = append(items, &p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, p *Prescription) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		UPDATE prescriptions
		SET type = $3, instructions = $4, updated_at = NOW()
		WHERE id = $1 AND doctor_id = $2
		RETURNING patient_id, pdf_url, created_at, updated_at`,
		p.ID, p.DoctorID, p.Type, p.Instructions,
	).Scan(&p.PatientID, &p.PDFURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update prescription: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM medications WHERE prescription_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear medications: %w", err)
	}
	if err := insertMedications(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertMedications(ctx context.Context, tx pgx.Tx, p *Prescription) error {
	for i, m := range p.Medications {
		m.ID = uuid.New()
		m.PrescriptionID = p.ID
		m.Position = i
		err := tx.QueryRow(ctx, `
			INSERT INTO medications (id, prescription_id, name, dosage, quantity, instructions, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at`,
			m.ID, m.PrescriptionID, m.Name, m.Dosage, m.Quantity, m.Instructions, m.Position,
		).Scan(&m.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert medication %d: %w", i+1, err)
		}
	}
	return nil
}
