package ee

import (
	"context"
	"net/http"
)

// Export file formats.
const (
	FormatGeoTIFF   = "GEO_TIFF"
	FormatShapefile = "SHP"
)

// metersPerDegree is the equatorial metres-per-degree used to convert an
// export scale into a WGS84 pixel size, matching the conversion the
// Earth Engine client libraries apply for Drive exports.
const metersPerDegree = 111319.49079327358

// DriveDestination names where in Drive an export lands.
type DriveDestination struct {
	FilenamePrefix string `json:"filenamePrefix"`
	Folder         string `json:"folder,omitempty"`
}

// ImageFileExportOptions selects the output format and destination for an
// image export.
type ImageFileExportOptions struct {
	FileFormat       string            `json:"fileFormat"`
	DriveDestination *DriveDestination `json:"driveDestination,omitempty"`
}

// TableFileExportOptions selects the output format and destination for a
// table export.
type TableFileExportOptions struct {
	FileFormat       string            `json:"fileFormat"`
	DriveDestination *DriveDestination `json:"driveDestination,omitempty"`
}

// AffineTransform positions pixels in CRS coordinates.
type AffineTransform struct {
	ScaleX     float64 `json:"scaleX"`
	ShearX     float64 `json:"shearX"`
	TranslateX float64 `json:"translateX"`
	ShearY     float64 `json:"shearY"`
	ScaleY     float64 `json:"scaleY"`
	TranslateY float64 `json:"translateY"`
}

// PixelGrid fixes the export CRS and resolution.
type PixelGrid struct {
	CRSCode         string           `json:"crsCode,omitempty"`
	AffineTransform *AffineTransform `json:"affineTransform,omitempty"`
}

// GridForScale returns a WGS84 pixel grid for an export scale given in
// metres per pixel.
func GridForScale(scaleMeters float64) *PixelGrid {
	deg := scaleMeters / metersPerDegree
	return &PixelGrid{
		CRSCode: "EPSG:4326",
		AffineTransform: &AffineTransform{
			ScaleX: deg,
			ScaleY: -deg,
		},
	}
}

// ImageExportRequest is the body of an image:export call.
type ImageExportRequest struct {
	Expression        *Expression             `json:"expression"`
	Description       string                  `json:"description,omitempty"`
	FileExportOptions *ImageFileExportOptions `json:"fileExportOptions"`
	MaxPixels         int64                   `json:"maxPixels,omitempty,string"`
	Grid              *PixelGrid              `json:"grid,omitempty"`
}

// TableExportRequest is the body of a table:export call.
type TableExportRequest struct {
	Expression        *Expression             `json:"expression"`
	Description       string                  `json:"description,omitempty"`
	FileExportOptions *TableFileExportOptions `json:"fileExportOptions"`
}

// ExportImageToDrive submits an image export job. The returned operation
// completes on the service side independent of this process.
func (c *Client) ExportImageToDrive(ctx context.Context, req *ImageExportRequest) (*Operation, error) {
	var op Operation
	if err := c.do(ctx, http.MethodPost, c.projectPath()+"/image:export", nil, req, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// ExportTableToDrive submits a table export job.
func (c *Client) ExportTableToDrive(ctx context.Context, req *TableExportRequest) (*Operation, error) {
	var op Operation
	if err := c.do(ctx, http.MethodPost, c.projectPath()+"/table:export", nil, req, &op); err != nil {
		return nil, err
	}
	return &op, nil
}
