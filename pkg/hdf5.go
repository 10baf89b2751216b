package cffilter

import (
	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type CollisionHDF5 struct {
	pos_z        float32
	mult_v0m     float32
	mult_ntracks int32
	spher        int32
	mag_field    int32
}

type ParticleHDF5 struct {
	collision_ref int32
	pt            float32
	eta           float32
	phi           float32
	part_type     int32
	cutbits       uint32
	pidbits       uint32
	dcaxy         float32
	child1        int32
	child2        int32
	m_lambda      float32
	m_antilambda  float32
}

type RunInfoHDF5 struct {
	run_number int32
}

type HistSummaryHDF5 struct {
	name    [STRLEN]byte
	entries int64
	mean    float64
	stddev  float64
}

const STRLEN = 64

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) *hdf5.File {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		panic(err)
	}
	return f
}

func createGroup(file *hdf5.File, groupName string) *hdf5.Group {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		panic(err)
	}
	return g
}

func createTable(group *hdf5.Group, name string, datatype interface{}) *hdf5.Dataset {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(err)
	}

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}

	chunks := []uint{32768}
	plist.SetChunk(chunks)

	// Set compression level
	plist.SetDeflate(configuration.CompressionLevel)

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		panic(err)
	}

	// create the dataset
	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		panic(err)
	}
	return dset
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, rowCounter int) {
	array := []T{data}
	writeArrayToTable(dataset, &array, rowCounter)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, rowCounter int) {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		panic(err)
	}

	// extend
	rowsInFile := uint(rowCounter)
	newsize := []uint{rowsInFile + length}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{rowsInFile}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}
