package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Empresa-api/internal/application/dto"
	"github.com/jhoicas/Empresa-api/internal/application/ports"
	"github.com/jhoicas/Empresa-api/internal/domain"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
)

// ProyectoUseCase CRUD de proyectos, mutación de tareas embebidas y la consulta de proyectos por empleado.
type ProyectoUseCase struct {
	repo      repository.ProyectoRepository
	empleados repository.EmpleadoRepository
	report    ports.ProyectoReportGenerator
	now       func() time.Time
}

// NewProyectoUseCase construye el caso de uso. report puede ser nil si no se expone el PDF.
func NewProyectoUseCase(repo repository.ProyectoRepository, empleados repository.EmpleadoRepository, report ports.ProyectoReportGenerator) *ProyectoUseCase {
	return &ProyectoUseCase{repo: repo, empleados: empleados, report: report, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ProyectoUseCase) WithClock(now func() time.Time) *ProyectoUseCase {
	uc.now = now
	return uc
}

// Save normaliza un id en blanco a ausente para que el almacén genere uno nuevo; nunca
// sobrescribe un documento cuyo id sea la cadena vacía.
func (uc *ProyectoUseCase) Save(ctx context.Context, p *entity.Proyecto) error {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = ""
	}
	p.ApplyDefaults(uc.now())
	return uc.repo.Save(ctx, p)
}

// List aplica los filtros opcionales: estado (sin distinguir mayúsculas) y empleadoId directo.
func (uc *ProyectoUseCase) List(ctx context.Context, f dto.ProyectoFilter) ([]*dto.ProyectoResponse, error) {
	var (
		list []*entity.Proyecto
		err  error
	)
	if f.EmpleadoID != nil {
		list, err = uc.repo.FindByEmpleadoID(ctx, *f.EmpleadoID)
	} else {
		list, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	if estado := strings.TrimSpace(f.Estado); estado != "" {
		fold := cases.Fold()
		want := fold.String(estado)
		kept := list[:0]
		for _, p := range list {
			if fold.String(string(p.Estado)) == want {
				kept = append(kept, p)
			}
		}
		list = kept
	}
	return toProyectoResponses(list), nil
}

// GetByID devuelve ErrProyectoNotFound si no existe.
func (uc *ProyectoUseCase) GetByID(ctx context.Context, id string) (*dto.ProyectoResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProyectoResponse(p), nil
}

// Create valida y persiste. empleadoId, si viene, debe referenciar un empleado existente.
func (uc *ProyectoUseCase) Create(ctx context.Context, in dto.ProyectoRequest) (*dto.ProyectoResponse, error) {
	if err := uc.validate(ctx, &in); err != nil {
		return nil, err
	}
	p := entity.NewProyecto(in.Nombre, in.Descripcion, in.EmpleadoID, uc.now())
	p.ID = in.ID
	p.FechaEstimadaFin = in.FechaEstimadaFin
	if in.Estado != "" {
		p.Estado = entity.EstadoProyecto(in.Estado)
	}
	p.Empleados = toEmpleadoSnapshots(in.Empleados)
	if err := uc.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProyectoResponse(p), nil
}

// Update reemplaza los datos editables; tareas y fecha de creación se conservan.
func (uc *ProyectoUseCase) Update(ctx context.Context, id string, in dto.ProyectoRequest) (*dto.ProyectoResponse, error) {
	if err := uc.validate(ctx, &in); err != nil {
		return nil, err
	}
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Nombre = in.Nombre
	p.Descripcion = in.Descripcion
	p.EmpleadoID = in.EmpleadoID
	p.FechaEstimadaFin = in.FechaEstimadaFin
	if in.Estado != "" {
		p.Estado = entity.EstadoProyecto(in.Estado)
	}
	if in.Empleados != nil {
		p.Empleados = toEmpleadoSnapshots(in.Empleados)
	}
	if err := uc.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProyectoResponse(p), nil
}

func (uc *ProyectoUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProyectoNotFound
	}
	return nil
}

func (uc *ProyectoUseCase) Count(ctx context.Context) (int64, error) {
	return uc.repo.Count(ctx)
}

// SearchByNombre coincidencia parcial sin distinguir mayúsculas.
func (uc *ProyectoUseCase) SearchByNombre(ctx context.Context, nombre string) ([]*dto.ProyectoResponse, error) {
	list, err := uc.repo.SearchByNombre(ctx, strings.TrimSpace(nombre))
	if err != nil {
		return nil, err
	}
	return toProyectoResponses(list), nil
}

// FindByEmpleado une los proyectos con referencia directa (empleadoId) y los que lo embeben
// en empleados. Los directos van primero; de los embebidos solo se agregan los que aún no
// aparecen (igualdad por id).
func (uc *ProyectoUseCase) FindByEmpleado(ctx context.Context, empleadoID int64) ([]*dto.ProyectoResponse, error) {
	list, err := uc.findByEmpleado(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	return toProyectoResponses(list), nil
}

func (uc *ProyectoUseCase) findByEmpleado(ctx context.Context, empleadoID int64) ([]*entity.Proyecto, error) {
	direct, err := uc.repo.FindByEmpleadoID(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	embedded, err := uc.repo.FindByEmpleadosID(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(direct)+len(embedded))
	out := make([]*entity.Proyecto, 0, len(direct)+len(embedded))
	for _, list := range [][]*entity.Proyecto{direct, embedded} {
		for _, p := range list {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out, nil
}

// AddTask agrega la tarea al final y guarda el documento completo.
// Devuelve (nil, nil) si el proyecto no existe: el llamador debe comprobarlo.
func (uc *ProyectoUseCase) AddTask(ctx context.Context, proyectoID string, in dto.TareaRequest) (*dto.TareaMutationResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	t := entity.Tarea{
		ID:               strings.TrimSpace(in.ID),
		Titulo:           strings.TrimSpace(in.Titulo),
		Descripcion:      in.Descripcion,
		FechaVencimiento: in.FechaVencimiento.Time,
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	p.AgregarTarea(t)
	if err := uc.Save(ctx, p); err != nil {
		return nil, err
	}
	return toTareaMutation(p, t), nil
}

// ListTareas tareas en orden de inserción con el resumen de avance.
func (uc *ProyectoUseCase) ListTareas(ctx context.Context, proyectoID string) (*dto.TareasResponse, error) {
	p, err := uc.get(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	return &dto.TareasResponse{
		Tareas:             toTareaResponses(p.Tareas),
		Total:              len(p.Tareas),
		Completadas:        p.TareasCompletadas(),
		PorcentajeProgreso: p.PorcentajeProgreso(),
	}, nil
}

// CompletarTarea marca como completada la tarea con ese id (solo por id).
func (uc *ProyectoUseCase) CompletarTarea(ctx context.Context, proyectoID, tareaID string) (*dto.TareaMutationResponse, error) {
	p, err := uc.get(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	i := p.IndexOfTarea(tareaID)
	if i < 0 {
		return nil, domain.ErrTareaNotFound
	}
	p.Tareas[i].Completada = true
	if err := uc.Save(ctx, p); err != nil {
		return nil, err
	}
	return toTareaMutation(p, p.Tareas[i]), nil
}

// ToggleTarea alterna completada. ref es el id o, para clientes antiguos, la posición.
func (uc *ProyectoUseCase) ToggleTarea(ctx context.Context, proyectoID, ref string) (*dto.TareaMutationResponse, error) {
	p, err := uc.get(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	i := p.ResolveTarea(ref)
	if i < 0 {
		return nil, domain.ErrTareaNotFound
	}
	p.Tareas[i].Completada = !p.Tareas[i].Completada
	if err := uc.Save(ctx, p); err != nil {
		return nil, err
	}
	return toTareaMutation(p, p.Tareas[i]), nil
}

// EliminarTarea elimina por id y, si no coincide, por posición dentro de los límites.
func (uc *ProyectoUseCase) EliminarTarea(ctx context.Context, proyectoID, ref string) (*dto.TareaMutationResponse, error) {
	p, err := uc.get(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	i := p.ResolveTarea(ref)
	if i < 0 {
		return nil, domain.ErrTareaNotFound
	}
	t := p.RemoveTareaAt(i)
	if err := uc.Save(ctx, p); err != nil {
		return nil, err
	}
	return toTareaMutation(p, t), nil
}

// CambiarEstado acepta cualquiera de los cuatro estados sin distinguir mayúsculas.
func (uc *ProyectoUseCase) CambiarEstado(ctx context.Context, proyectoID string, in dto.EstadoRequest) (*dto.ProyectoResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	estado, ok := parseEstado(in.Estado)
	if !ok {
		return nil, domain.NewValidationError("estado", "debe ser uno de: "+estadosPermitidos())
	}
	p, err := uc.get(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	p.Estado = estado
	if err := uc.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProyectoResponse(p), nil
}

// Estadisticas conteo por estado y avance global de todas las tareas.
func (uc *ProyectoUseCase) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.EstadisticasResponse{TotalProyectos: len(list)}
	for _, p := range list {
		switch p.Estado {
		case entity.EstadoPendiente:
			out.Pendientes++
		case entity.EstadoEnProgreso:
			out.EnProgreso++
		case entity.EstadoCompletado:
			out.Completados++
		case entity.EstadoCancelado:
			out.Cancelados++
		}
		out.TotalTareas += len(p.Tareas)
		out.TareasCompletadas += p.TareasCompletadas()
	}
	out.ProgresoGeneral = entity.Porcentaje(out.TareasCompletadas, out.TotalTareas)
	return out, nil
}

// ReportPDF informe del proyecto. Una referencia a un empleado eliminado se trata como ausente.
func (uc *ProyectoUseCase) ReportPDF(ctx context.Context, proyectoID string) ([]byte, error) {
	if uc.report == nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.get(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	var responsable *entity.Empleado
	if p.EmpleadoID != nil {
		responsable, err = uc.empleados.GetByID(ctx, *p.EmpleadoID)
		if err != nil {
			return nil, err
		}
	}
	return uc.report.GenerateProyectoPDF(ctx, p, responsable)
}

func (uc *ProyectoUseCase) validate(ctx context.Context, in *dto.ProyectoRequest) error {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Descripcion = strings.TrimSpace(in.Descripcion)
	if err := dto.Validate(in); err != nil {
		return err
	}
	if in.EmpleadoID == nil {
		return nil
	}
	e, err := uc.empleados.GetByID(ctx, *in.EmpleadoID)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.NewValidationError("empleadoId", "el empleado no existe")
	}
	return nil
}

func (uc *ProyectoUseCase) get(ctx context.Context, id string) (*entity.Proyecto, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrProyectoNotFound
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProyectoNotFound
	}
	return p, nil
}

func parseEstado(s string) (entity.EstadoProyecto, bool) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(s))
	for _, e := range entity.EstadosProyecto {
		if fold.String(string(e)) == want {
			return e, true
		}
	}
	return "", false
}

func estadosPermitidos() string {
	names := make([]string, 0, len(entity.EstadosProyecto))
	for _, e := range entity.EstadosProyecto {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}

func toEmpleadoSnapshots(in []dto.EmpleadoResponse) []entity.Empleado {
	out := make([]entity.Empleado, 0, len(in))
	for _, e := range in {
		out = append(out, entity.Empleado{
			ID:       e.ID,
			Nombre:   e.Nombre,
			Apellido: e.Apellido,
			Cargo:    e.Cargo,
			Email:    e.Email,
			Salario:  e.Salario,
		})
	}
	return out
}

func toTareaResponse(t entity.Tarea) dto.TareaResponse {
	return dto.TareaResponse{
		ID:               t.ID,
		Titulo:           t.Titulo,
		Descripcion:      t.Descripcion,
		FechaVencimiento: dto.NewFecha(t.FechaVencimiento),
		Completada:       t.Completada,
	}
}

func toTareaResponses(ts []entity.Tarea) []dto.TareaResponse {
	out := make([]dto.TareaResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTareaResponse(t))
	}
	return out
}

func toProyectoResponse(p *entity.Proyecto) *dto.ProyectoResponse {
	if p == nil {
		return nil
	}
	empleados := make([]dto.EmpleadoResponse, 0, len(p.Empleados))
	for i := range p.Empleados {
		empleados = append(empleados, *toEmpleadoResponse(&p.Empleados[i]))
	}
	return &dto.ProyectoResponse{
		ID:                   p.ID,
		Nombre:               p.Nombre,
		Descripcion:          p.Descripcion,
		EmpleadoID:           p.EmpleadoID,
		Tareas:               toTareaResponses(p.Tareas),
		FechaCreacion:        p.FechaCreacion,
		FechaEstimadaFin:     p.FechaEstimadaFin,
		Estado:               string(p.Estado),
		Empleados:            empleados,
		TareasCompletadas:    p.TareasCompletadas(),
		PorcentajeCompletado: p.PorcentajeProgreso(),
	}
}

func toProyectoResponses(list []*entity.Proyecto) []*dto.ProyectoResponse {
	out := make([]*dto.ProyectoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProyectoResponse(p))
	}
	return out
}

func toTareaMutation(p *entity.Proyecto, t entity.Tarea) *dto.TareaMutationResponse {
	return &dto.TareaMutationResponse{
		Proyecto:           toProyectoResponse(p),
		Tarea:              toTareaResponse(t),
		PorcentajeProgreso: p.PorcentajeProgreso(),
	}
}
