package tools

import (
	"fmt"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportToExcel 将结构体切片写入指定 sheet，表头取自 excel 标签，"-" 表示忽略
func ExportToExcel(f *excelize.File, sheet string, data interface{}) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("data %T 不是切片", data)
	}

	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("data %T 不是结构体切片", data)
	}

	if sheet == "" {
		sheet = "Sheet1"
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	type fieldInfo struct {
		index  []int
		header string
	}

	var fields []fieldInfo

	var collect func(t reflect.Type, parent []int)
	collect = func(t reflect.Type, parent []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)

			if sf.PkgPath != "" {
				continue
			}

			idx := append(append([]int(nil), parent...), i)

			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				collect(sf.Type, idx)
				continue
			}

			tag := sf.Tag.Get("excel")
			if tag == "-" {
				continue
			}
			if tag == "" {
				tag = sf.Name
			}

			fields = append(fields, fieldInfo{index: idx, header: tag})
		}
	}

	collect(elemType, nil)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	// 写表头
	for i, fi := range fields {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, fi.header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	// 写数据行
	row := 2
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)

		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		for colIndex, fi := range fields {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(elem.FieldByIndex(fi.index))); err != nil {
				return err
			}
		}
		row++
	}

	if len(fields) > 0 {
		return f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	return nil
}

func cellValue(fv reflect.Value) interface{} {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return ""
		}
		fv = fv.Elem()
	}
	if t, ok := fv.Interface().(time.Time); ok {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	}
	return fv.Interface()
}

// WriteExcel 生成只有一个 sheet 的工作簿并作为附件返回
func WriteExcel(c *gin.Context, filename, sheet string, data interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := ExportToExcel(f, sheet, data); err != nil {
		return err
	}
	if sheet != "Sheet1" && sheet != "" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
		if idx, err := f.GetSheetIndex(sheet); err == nil && idx >= 0 {
			f.SetActiveSheet(idx)
		}
	}

	SetAttachment(c, filename, ExcelContentType)
	return f.Write(c.Writer)
}
