package scan

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math/big"

	"github.com/google/uuid"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const (
	explicitVRLittleEndian = "1.2.840.10008.1.2.1"
	ctImageStorage         = "1.2.840.10008.5.1.4.1.1.2"
)

// Meta is the patient information written into exported DICOM files.
type Meta struct {
	PatientID   string
	PatientName string
	Description string
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteDICOM encodes img as a single-frame 16-bit CT DICOM file.
func WriteDICOM(w io.Writer, img *image.Gray, meta Meta) error {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()

	nf := frame.NewNativeFrame[uint16](16, rows, cols, rows*cols, 1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			nf.RawData[y*cols+x] = uint16(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y) * 257
		}
	}
	pixels := dicom.PixelDataInfo{
		Frames: []*frame.Frame{
			{
				Encapsulated: false,
				NativeData:   nf,
			},
		},
	}

	instance := instanceUID()
	elements := []*dicom.Element{
		mustNewElement(tag.MediaStorageSOPClassUID, []string{ctImageStorage}),
		mustNewElement(tag.MediaStorageSOPInstanceUID, []string{instance}),
		mustNewElement(tag.TransferSyntaxUID, []string{explicitVRLittleEndian}),
		mustNewElement(tag.SOPClassUID, []string{ctImageStorage}),
		mustNewElement(tag.SOPInstanceUID, []string{instance}),
		mustNewElement(tag.PatientName, []string{meta.PatientName}),
		mustNewElement(tag.PatientID, []string{meta.PatientID}),
		mustNewElement(tag.Modality, []string{"CT"}),
		mustNewElement(tag.SeriesDescription, []string{meta.Description}),
		mustNewElement(tag.Rows, []int{rows}),
		mustNewElement(tag.Columns, []int{cols}),
		mustNewElement(tag.BitsAllocated, []int{16}),
		mustNewElement(tag.BitsStored, []int{16}),
		mustNewElement(tag.HighBit, []int{15}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.SamplesPerPixel, []int{1}),
		mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		mustNewElement(tag.PixelData, pixels),
	}
	if err := dicom.Write(w, dicom.Dataset{Elements: elements}); err != nil {
		return fmt.Errorf("write dicom: %w", err)
	}
	return nil
}

func mustNewElement(t tag.Tag, value any) *dicom.Element {
	el, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return el
}

// instanceUID derives a DICOM UID from a random UUID (the 2.25 root).
func instanceUID() string {
	id := uuid.New()
	return "2.25." + new(big.Int).SetBytes(id[:]).String()
}
