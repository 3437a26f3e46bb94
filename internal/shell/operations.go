package shell

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/JuanS3/INTER-seguridad-taller3/internal/errors"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/service"
)

// The operations below return only input errors. Service errors are reported through fail.

func (s *Shell) registerProduct(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- REGISTRO DE PRODUCTO ---")

	id, err := s.ask("ID del producto (Enter para generar): ")
	if err != nil {
		return err
	}
	if id == "" {
		id = s.newID()
		fmt.Fprintf(s.out, "ID generado: %s\n", id)
	}
	name, err := s.ask("Nombre del producto: ")
	if err != nil {
		return err
	}
	price, err := askValue(s, "Precio del producto: ", false, parsePrice)
	if err != nil {
		return err
	}
	category, err := s.ask("Categoría del producto: ")
	if err != nil {
		return err
	}
	stock, err := askValue(s, "Stock del producto: ", false, parseStock)
	if err != nil {
		return err
	}

	dto := service.ProductCreateDto{
		ID:       id,
		Name:     name,
		Price:    *price,
		Category: category,
		Stock:    *stock,
	}
	if !s.checkDto(ctx, dto) {
		return nil
	}
	created, err := s.inventory.Register(ctx, dto)
	if err != nil {
		s.fail(ctx, err)
		return nil
	}
	fmt.Fprintf(s.out, "Producto '%s' registrado exitosamente.\n", created.Name)
	return nil
}

func (s *Shell) listProducts(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- LISTADO DE PRODUCTOS ---")

	products, err := s.inventory.FindAll(ctx)
	if err != nil {
		s.fail(ctx, err)
		return nil
	}
	if len(products) == 0 {
		fmt.Fprintln(s.out, "No hay productos registrados.")
		return nil
	}
	renderProducts(s.out, products)
	return nil
}

func (s *Shell) updateProduct(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- ACTUALIZACIÓN DE PRODUCTO ---")

	id, err := s.ask("ID del producto a actualizar: ")
	if err != nil {
		return err
	}
	product, err := s.inventory.FindByID(ctx, id)
	if err != nil {
		s.fail(ctx, err)
		return nil
	}
	fmt.Fprintf(s.out, "Producto encontrado: %s\n", product.Name)

	name, err := s.ask("Nuevo nombre (Enter para mantener): ")
	if err != nil {
		return err
	}
	price, err := askValue(s, "Nuevo precio (Enter para mantener): ", true, parsePrice)
	if err != nil {
		return err
	}
	category, err := s.ask("Nueva categoría (Enter para mantener): ")
	if err != nil {
		return err
	}
	stock, err := askValue(s, "Nuevo stock (Enter para mantener): ", true, parseStock)
	if err != nil {
		return err
	}
	discount, err := askValue(s, "Nuevo descuento % (Enter para mantener, 0 para quitar): ", true, parseDiscount)
	if err != nil {
		return err
	}

	changes := service.ProductUpdateDto{
		Name:     optionalText(name),
		Price:    price,
		Category: optionalText(category),
		Stock:    stock,
		Discount: discount,
	}
	if !s.checkDto(ctx, changes) {
		return nil
	}
	if _, err := s.inventory.Update(ctx, id, changes); err != nil {
		s.fail(ctx, err)
		return nil
	}
	fmt.Fprintln(s.out, "Producto actualizado exitosamente.")
	return nil
}

func (s *Shell) deleteProduct(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- ELIMINACIÓN DE PRODUCTO ---")

	id, err := s.ask("ID del producto a eliminar: ")
	if err != nil {
		return err
	}
	if err := s.inventory.DeleteByID(ctx, id); err != nil {
		s.fail(ctx, err)
		return nil
	}
	fmt.Fprintln(s.out, "Producto eliminado exitosamente.")
	return nil
}

func (s *Shell) recordSale(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- REGISTRO DE VENTA ---")

	id, err := s.ask("ID del producto vendido: ")
	if err != nil {
		return err
	}
	quantity, err := askValue(s, "Cantidad vendida: ", false, parseQuantity)
	if err != nil {
		return err
	}

	sale, err := s.inventory.RecordSale(ctx, id, *quantity)
	if errors.Is(err, perrors.ErrInsufficientStock) {
		if product, findErr := s.inventory.FindByID(ctx, id); findErr == nil {
			fmt.Fprintf(s.out, "ERROR: Stock insuficiente. Stock actual: %d\n", product.Stock)
			return nil
		}
	}
	if err != nil {
		s.fail(ctx, err)
		return nil
	}
	fmt.Fprintf(s.out, "Venta registrada exitosamente. Total: $%s\n", sale.Total.StringFixed(2))
	return nil
}

func (s *Shell) salesReport(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- REPORTE DE VENTAS ---")

	report, err := s.reports.Generate(ctx)
	if err != nil {
		s.fail(ctx, err)
		return nil
	}
	if report.Count == 0 {
		fmt.Fprintln(s.out, "No hay ventas registradas.")
		return nil
	}
	renderReport(s.out, report)
	return nil
}
