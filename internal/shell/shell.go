// Package shell implements the interactive menu on top of the inventory and report services.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"time"

	perrors "github.com/JuanS3/INTER-seguridad-taller3/internal/errors"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/platform/logger"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultPrompt = "Seleccione una opción: "

// Shell runs the numbered menu. It validates every DTO before handing it to a service
// and turns service errors into messages, so a failed operation never ends the loop.
type Shell struct {
	inventory service.InventoryService
	reports   service.ReportService
	in        LineReader
	out       io.Writer
	validate  *validator.Validate
	logger    *slog.Logger
	prompt    string
	newID     func() string
	menu      map[string]operation
}

// operation is one menu entry. run returns only input errors.
type operation struct {
	name string
	run  func(ctx context.Context) error
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt sets the prompt shown when asking for a menu option.
func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		if prompt != "" {
			s.prompt = prompt
		}
	}
}

// WithIDGenerator replaces the generator used for products registered without an ID.
func WithIDGenerator(newID func() string) Option {
	return func(s *Shell) {
		s.newID = newID
	}
}

func New(
	inventory service.InventoryService,
	reports service.ReportService,
	in LineReader,
	out io.Writer,
	logger *slog.Logger,
	opts ...Option,
) *Shell {
	s := &Shell{
		inventory: inventory,
		reports:   reports,
		in:        in,
		out:       out,
		validate:  newValidator(),
		logger:    logger.With("component", "shell"),
		prompt:    DefaultPrompt,
		newID:     uuid.NewString,
	}
	s.menu = map[string]operation{
		"1": {name: "register_product", run: s.registerProduct},
		"2": {name: "list_products", run: s.listProducts},
		"3": {name: "update_product", run: s.updateProduct},
		"4": {name: "delete_product", run: s.deleteProduct},
		"5": {name: "record_sale", run: s.recordSale},
		"6": {name: "sales_report", run: s.salesReport},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newValidator returns a validator that compares decimal fields as numbers.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Run shows the menu until the user exits, input ends or ctx is canceled.
// A failing reader is logged and treated as end of input.
func (s *Shell) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		s.printMenu()
		choice, err := s.ask(s.prompt)
		if err != nil {
			s.endInput(ctx, err)
			return nil
		}

		if choice == "7" {
			fmt.Fprintln(s.out, "¡Gracias por usar el sistema!")
			return nil
		}
		op, ok := s.menu[choice]
		if !ok {
			fmt.Fprintln(s.out, "Opción inválida. Intente nuevamente.")
			continue
		}
		err = s.perform(ctx, op)

		switch {
		case err == nil:
		case errors.Is(err, ErrInterrupted):
			fmt.Fprintln(s.out, "Operación cancelada.")
		default:
			s.endInput(ctx, err)
			return nil
		}
	}
	return nil
}

func (s *Shell) endInput(ctx context.Context, err error) {
	if !errors.Is(err, io.EOF) && !errors.Is(err, ErrInterrupted) {
		s.logger.ErrorContext(ctx, "Failed to read input", "error", err)
	}
	fmt.Fprintln(s.out)
}

// perform runs op under its own operation context. A panic inside op is logged and
// reported, and the menu keeps running.
func (s *Shell) perform(ctx context.Context, op operation) (err error) {
	ctx = logger.WithOperation(ctx, op.name)
	start := time.Now()
	defer func() {
		if rvr := recover(); rvr != nil {
			s.logger.ErrorContext(ctx, "Panic recovered", "panic", rvr)
			fmt.Fprintln(s.out, "ERROR: Error interno. La operación no se completó.")
			err = nil
			return
		}
		s.logger.DebugContext(ctx, "Operation completed",
			"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
			"error", err,
		)
	}()
	return op.run(ctx)
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "\n===== SISTEMA DE REGISTRO DE PRODUCTOS =====")
	fmt.Fprintln(s.out, "1. Registrar producto")
	fmt.Fprintln(s.out, "2. Consultar productos")
	fmt.Fprintln(s.out, "3. Actualizar producto")
	fmt.Fprintln(s.out, "4. Eliminar producto")
	fmt.Fprintln(s.out, "5. Registrar venta")
	fmt.Fprintln(s.out, "6. Generar reporte de ventas")
	fmt.Fprintln(s.out, "7. Salir")
	fmt.Fprintln(s.out)
}

// fail prints the message for a service error.
func (s *Shell) fail(ctx context.Context, err error) {
	switch {
	case errors.Is(err, perrors.ErrPartialCommit):
		s.logger.ErrorContext(ctx, "Sale recorded without stock update", "error", err)
		fmt.Fprintln(s.out, "ERROR: La venta quedó registrada pero el stock no pudo actualizarse. Revise los archivos de datos.")
	case errors.Is(err, perrors.ErrProductNotFound):
		fmt.Fprintln(s.out, "ERROR: No se encontró un producto con ese ID.")
	case errors.Is(err, perrors.ErrDuplicateProduct):
		fmt.Fprintln(s.out, "ERROR: Ya existe un producto con ese ID.")
	case errors.Is(err, perrors.ErrInsufficientStock):
		fmt.Fprintln(s.out, "ERROR: Stock insuficiente.")
	case errors.Is(err, perrors.ErrInvalidInput):
		fmt.Fprintln(s.out, "ERROR: Entrada inválida.")
	default:
		s.logger.ErrorContext(ctx, "Operation failed", "error", err)
		fmt.Fprintln(s.out, "ERROR: No se pudo acceder a los datos. Los cambios no fueron guardados.")
	}
}

var collectionLabels = map[string]string{
	"products": "productos",
	"sales":    "ventas",
}

// MalformedDataReporter returns a handler that tells the user a data file could not be read.
// The collection is then treated as empty.
func MalformedDataReporter(out io.Writer) service.MalformedDataHandler {
	return func(_ context.Context, collection string, _ error) {
		label, ok := collectionLabels[collection]
		if !ok {
			label = collection
		}
		fmt.Fprintf(out, "Error al leer el archivo de %s.\n", label)
	}
}

var fieldLabels = map[string]string{
	"ID":       "ID",
	"Name":     "Nombre",
	"Price":    "Precio",
	"Category": "Categoría",
	"Stock":    "Stock",
	"Discount": "Descuento",
}

// checkDto validates dto and prints one line per violated rule. It reports whether dto is valid.
func (s *Shell) checkDto(ctx context.Context, dto any) bool {
	err := s.validate.Struct(dto)
	if err == nil {
		return true
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		s.logger.ErrorContext(ctx, "Validation failed", "error", err)
		fmt.Fprintln(s.out, "ERROR: Entrada inválida.")
		return false
	}
	for _, fe := range fieldErrs {
		fmt.Fprintf(s.out, "ERROR: %s.\n", describe(fe))
	}
	return false
}

func describe(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s es obligatorio", label)
	case "max":
		return fmt.Sprintf("%s admite como máximo %s caracteres", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual a %s", label, fe.Param())
	}
	return fmt.Sprintf("%s no es válido", label)
}
